package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/config"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/lifecycle"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/notify"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/reminder"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/schedule"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/store"
)

var orchestrator *lifecycle.Orchestrator

func init() {
	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg := config.Load()
	orchestrator = lifecycle.New(
		store.New(awsCfg, cfg.TableName),
		schedule.New(awsCfg, cfg.ProcessReminderARN, cfg.SchedulerRoleARN, cfg.ScheduleGroup),
		notify.New(awsCfg, cfg.FromAddress),
	)
}

// handler receives the due-reminder event from EventBridge Scheduler. Errors
// propagate so the scheduler's retry policy can re-invoke.
func handler(ctx context.Context, event reminder.FireEvent) error {
	return orchestrator.HandleFire(ctx, event)
}

func main() {
	lambda.Start(handler)
}
