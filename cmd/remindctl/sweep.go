package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sweepGrace time.Duration

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Cancel schedules whose reminder record was never persisted",
	Long: `Cancel orphaned EventBridge Scheduler triggers.

Creating a reminder registers its trigger before writing the record, so a
failed write can leave a trigger with no matching record. sweep finds and
cancels them. Triggers younger than --grace are left alone so an in-flight
create is not raced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orchestrator, err := newOrchestrator(cmd.Context())
		if err != nil {
			return err
		}

		canceled, err := orchestrator.SweepOrphanedSchedules(cmd.Context(), sweepGrace)
		if err != nil {
			return err
		}

		if len(canceled) == 0 {
			fmt.Println("No orphaned schedules found")
			return nil
		}
		for _, name := range canceled {
			fmt.Printf("Canceled orphaned schedule %s\n", name)
		}
		return nil
	},
}

func init() {
	sweepCmd.Flags().DurationVar(&sweepGrace, "grace", 10*time.Minute, "skip schedules younger than this")
}
