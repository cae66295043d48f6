package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/config"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/lifecycle"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/notify"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/resolver"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/schedule"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/store"
)

var reminderResolver *resolver.Resolver

func init() {
	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg := config.Load()
	log.Printf("Configuration: table=%s, schedule_group=%s, fire_target=%s",
		cfg.TableName, cfg.ScheduleGroup, cfg.ProcessReminderARN)

	orchestrator := lifecycle.New(
		store.New(awsCfg, cfg.TableName),
		schedule.New(awsCfg, cfg.ProcessReminderARN, cfg.SchedulerRoleARN, cfg.ScheduleGroup),
		notify.New(awsCfg, cfg.FromAddress),
	)
	reminderResolver = resolver.New(orchestrator)
}

func handler(ctx context.Context, event resolver.Event) (any, error) {
	log.Printf("Resolving field: %s", event.Info.FieldName)

	result, err := reminderResolver.Resolve(ctx, event)
	if err != nil {
		log.Printf("Error in %s: %v", event.Info.FieldName, err)
		return nil, err
	}

	return result, nil
}

func main() {
	lambda.Start(handler)
}
