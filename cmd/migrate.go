package cmd

import (
	"context"
	"fmt"

	"dummy-importer/core/config"
	"dummy-importer/core/database"
	"dummy-importer/core/logger"
	"dummy-importer/feature/importer/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkOnly bool

// migrateCmd applies the schema migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the import tables",
	Long: `Applies the embedded migrations to a MySQL database, or auto-migrates a
sqlite database. With --check only reports missing columns.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if checkOnly {
			if err := checkSchema(db); err != nil {
				return err
			}
			l.Info("Schema is up to date")
			return nil
		}

		if err := database.Migrate(context.Background(), db, models.All()...); err != nil {
			return err
		}
		l.Info("Migrations applied", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only verify that the required columns exist")

	RootCmd.AddCommand(migrateCmd)
}
