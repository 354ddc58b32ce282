package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"dummy-importer/core/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scheduleSpec string

// scheduleCmd runs the import on a cron schedule.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the import periodically",
	Long: `Runs the import with the configured limit and skip on a cron schedule
until interrupted. The schedule defaults to import.schedule ("@every 1h").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		spec := a.cfg.Import.Schedule
		if scheduleSpec != "" {
			spec = scheduleSpec
		}

		s := scheduler.New(time.Local, a.logger)
		id, err := s.ScheduleSpec(spec, func() {
			report, err := a.service.Run(ctx, a.cfg.Import.Limit, a.cfg.Import.Skip)
			if err != nil {
				a.logger.Error("Scheduled import failed", zap.Error(err))
				return
			}
			a.logger.Info("Scheduled import done", zap.Int("processed", report.Processed))
		})
		if err != nil {
			return err
		}

		s.Start()
		a.logger.Info("Scheduler started", zap.String("schedule", spec), zap.Time("next", s.Next(id)))

		<-ctx.Done()
		a.logger.Info("Stopping scheduler...")
		s.Stop()
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleSpec, "spec", "", "Cron spec overriding import.schedule")

	RootCmd.AddCommand(scheduleCmd)
}
