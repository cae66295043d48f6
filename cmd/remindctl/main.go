package main

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/config"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/lifecycle"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/notify"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/schedule"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/store"
)

var rootCmd = &cobra.Command{
	Use:   "remindctl",
	Short: "Operate the reminder backend",
	Long: `remindctl - operator tooling for the reminder backend

Inspect and manage reminder records and their EventBridge Scheduler triggers.

Examples:
  # List a user's reminders
  remindctl list --user u1

  # Delete a reminder (cancels its trigger too)
  remindctl delete --user u1 --id rem_6f9e...

  # Cancel triggers whose record was never persisted
  remindctl sweep
`,
	SilenceUsage: true,
}

// newOrchestrator wires the live AWS clients the same way the lambdas do.
func newOrchestrator(ctx context.Context) (*lifecycle.Orchestrator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	cfg := config.Load()
	return lifecycle.New(
		store.New(awsCfg, cfg.TableName),
		schedule.New(awsCfg, cfg.ProcessReminderARN, cfg.SchedulerRoleARN, cfg.ScheduleGroup),
		notify.New(awsCfg, cfg.FromAddress),
	), nil
}

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
