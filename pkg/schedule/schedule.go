// Package schedule manages the one-shot EventBridge Scheduler triggers that
// fire reminders, one trigger per live reminder.
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	schedulertypes "github.com/aws/aws-sdk-go-v2/service/scheduler/types"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/reminder"
)

// SchedulerAPI defines the interface for EventBridge Scheduler operations
type SchedulerAPI interface {
	CreateSchedule(ctx context.Context, params *scheduler.CreateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error)
	DeleteSchedule(ctx context.Context, params *scheduler.DeleteScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.DeleteScheduleOutput, error)
	GetSchedule(ctx context.Context, params *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error)
	ListSchedules(ctx context.Context, params *scheduler.ListSchedulesInput, optFns ...func(*scheduler.Options)) (*scheduler.ListSchedulesOutput, error)
}

// Orphan describes a schedule whose embedded fire event points at a reminder
// record that no longer exists.
type Orphan struct {
	Name      string
	Event     reminder.FireEvent
	CreatedAt time.Time
}

// Controller registers and cancels one-shot reminder triggers.
type Controller struct {
	client        SchedulerAPI
	targetARN     string
	roleARN       string
	scheduleGroup string
}

// New creates a schedule controller targeting the fire-handler lambda.
func New(cfg aws.Config, targetARN, roleARN, scheduleGroup string) *Controller {
	return &Controller{
		client:        scheduler.NewFromConfig(cfg),
		targetARN:     targetARN,
		roleARN:       roleARN,
		scheduleGroup: scheduleGroup,
	}
}

// NewWithClient creates a controller with an explicit client, for tests.
func NewWithClient(client SchedulerAPI, targetARN, roleARN, scheduleGroup string) *Controller {
	return &Controller{
		client:        client,
		targetARN:     targetARN,
		roleARN:       roleARN,
		scheduleGroup: scheduleGroup,
	}
}

// CreateOneShot registers a trigger named after the reminder id that invokes
// the fire handler once at fireAt, then deletes its own registration. The full
// fire event rides in the target input so the fire path needs no store read.
func (c *Controller) CreateOneShot(ctx context.Context, name string, fireAt time.Time, event reminder.FireEvent) error {
	input, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal fire event: %v", reminder.ErrScheduling, err)
	}

	// at() expressions are evaluated in UTC when no timezone is set.
	expression := fmt.Sprintf("at(%s)", fireAt.UTC().Format("2006-01-02T15:04:05"))

	_, err = c.client.CreateSchedule(ctx, &scheduler.CreateScheduleInput{
		Name:                  aws.String(name),
		GroupName:             aws.String(c.scheduleGroup),
		ScheduleExpression:    aws.String(expression),
		ActionAfterCompletion: schedulertypes.ActionAfterCompletionDelete,
		FlexibleTimeWindow: &schedulertypes.FlexibleTimeWindow{
			Mode: schedulertypes.FlexibleTimeWindowModeOff,
		},
		Target: &schedulertypes.Target{
			Arn:     aws.String(c.targetARN),
			RoleArn: aws.String(c.roleARN),
			Input:   aws.String(string(input)),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: create schedule %s: %v", reminder.ErrScheduling, name, err)
	}

	return nil
}

// Cancel deletes a trigger. A schedule that no longer exists (already fired,
// or a previous cancel won the race) is logged and treated as success.
func (c *Controller) Cancel(ctx context.Context, name string) error {
	_, err := c.client.DeleteSchedule(ctx, &scheduler.DeleteScheduleInput{
		Name:      aws.String(name),
		GroupName: aws.String(c.scheduleGroup),
	})
	if err != nil {
		var notFound *schedulertypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			log.Printf("Schedule %s already gone, nothing to cancel", name)
			return nil
		}
		return fmt.Errorf("delete schedule %s: %w", name, err)
	}

	return nil
}

// ListOrphans walks the schedule group and returns triggers whose embedded
// fire event no longer matches a live record, as judged by exists. Schedules
// younger than grace are skipped to avoid racing an in-flight create.
func (c *Controller) ListOrphans(ctx context.Context, grace time.Duration, exists func(ctx context.Context, userID, id string) (bool, error)) ([]Orphan, error) {
	var orphans []Orphan
	var nextToken *string

	for {
		page, err := c.client.ListSchedules(ctx, &scheduler.ListSchedulesInput{
			GroupName: aws.String(c.scheduleGroup),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}

		for _, summary := range page.Schedules {
			if summary.Name == nil {
				continue
			}
			if summary.CreationDate != nil && time.Since(*summary.CreationDate) < grace {
				continue
			}

			detail, err := c.client.GetSchedule(ctx, &scheduler.GetScheduleInput{
				Name:      summary.Name,
				GroupName: aws.String(c.scheduleGroup),
			})
			if err != nil {
				var notFound *schedulertypes.ResourceNotFoundException
				if errors.As(err, &notFound) {
					continue // Fired between list and get
				}
				return nil, fmt.Errorf("get schedule %s: %w", *summary.Name, err)
			}
			if detail.Target == nil || detail.Target.Input == nil {
				continue
			}

			var event reminder.FireEvent
			if err := json.Unmarshal([]byte(*detail.Target.Input), &event); err != nil || event.Type != reminder.EventTypeReminderDue {
				continue // Not a reminder trigger
			}

			alive, err := exists(ctx, event.Reminder.UserID, event.Reminder.ID)
			if err != nil {
				return nil, err
			}
			if alive {
				continue
			}

			orphan := Orphan{Name: *summary.Name, Event: event}
			if summary.CreationDate != nil {
				orphan.CreatedAt = *summary.CreationDate
			}
			orphans = append(orphans, orphan)
		}

		if page.NextToken == nil {
			break
		}
		nextToken = page.NextToken
	}

	return orphans, nil
}
