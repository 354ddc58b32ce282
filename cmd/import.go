package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"dummy-importer/core/utils"
	"dummy-importer/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunImport          bool
	continueOnErrorImport bool
)

// importCmd imports one page of users with their banks and posts.
var importCmd = &cobra.Command{
	Use:   "import [limit] [skip]",
	Short: "Import one page of users with their banks and posts",
	Long: `Fetch a page of users from the dummyjson API and upsert them, their
banks and all of their posts. Users and posts are matched on their upstream id.

Examples:
  # First 10 users
  import

  # Users 21 to 25
  import 5 20

  # Show what would change without writing
  import 30 --dry-run`,
	Args: cobra.MaximumNArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&dryRunImport, "dry-run", false, "Roll back every write")
	importCmd.Flags().BoolVar(&continueOnErrorImport, "continue-on-error", false, "Skip failing users instead of aborting")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	req := importer.Request{
		Limit:           a.cfg.Import.Limit,
		Skip:            a.cfg.Import.Skip,
		DryRun:          dryRunImport,
		ContinueOnError: continueOnErrorImport || a.cfg.Import.ContinueOnError,
	}
	if len(args) > 0 {
		if req.Limit, err = utils.ParseCount(args[0], importer.DefaultLimit); err != nil {
			return fmt.Errorf("invalid limit: %w", err)
		}
	}
	if len(args) > 1 {
		if req.Skip, err = utils.ParseCount(args[1], 0); err != nil {
			return fmt.Errorf("invalid skip: %w", err)
		}
	}

	report, err := a.service.Import(ctx, req)
	if err != nil {
		return err
	}

	if len(report.Failures) > 0 {
		a.logger.Warn("Some users were skipped", zap.Int("failures", len(report.Failures)))
	}
	if report.DryRun {
		a.logger.Info("Dry-run mode: no changes were made.",
			zap.Int("users_inserted", report.Users.Inserted),
			zap.Int("users_updated", report.Users.Updated),
			zap.Int("posts", report.Posts.Total()),
		)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d user(s) updated or inserted\n", report.Processed)
	return nil
}
