// Package lifecycle ties the reminder store, schedule controller, and mailer
// together into the create/list/delete/fire state machine.
//
// A reminder is either Pending (record plus an active one-shot trigger) or
// gone. The two removal paths, user delete and successful fire, both end in an
// idempotent store delete, so a racing delete and fire always converge on the
// same final state.
package lifecycle

import (
	"context"
	"log"
	"time"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/reminder"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/schedule"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/store"
)

// Store is the persistence surface the orchestrator needs.
type Store interface {
	List(ctx context.Context, userID string) ([]reminder.Reminder, error)
	Get(ctx context.Context, userID, id string) (*reminder.Reminder, error)
	Put(ctx context.Context, rec *reminder.Reminder) error
	Delete(ctx context.Context, userID, id string) error
}

// Scheduler is the one-shot trigger surface the orchestrator needs.
type Scheduler interface {
	CreateOneShot(ctx context.Context, name string, fireAt time.Time, event reminder.FireEvent) error
	Cancel(ctx context.Context, name string) error
	ListOrphans(ctx context.Context, grace time.Duration, exists func(ctx context.Context, userID, id string) (bool, error)) ([]schedule.Orphan, error)
}

// Mailer is the notification surface the orchestrator needs.
type Mailer interface {
	Send(ctx context.Context, recipient, description, dateTime string) error
}

// Orchestrator owns the reminder state machine. All collaborators are injected
// so tests can substitute fakes; there is no ambient client state.
type Orchestrator struct {
	store     Store
	scheduler Scheduler
	mailer    Mailer
	now       func() time.Time
	newID     func() string
}

// New creates an orchestrator over the given collaborators.
func New(st Store, sched Scheduler, mailer Mailer) *Orchestrator {
	return &Orchestrator{
		store:     st,
		scheduler: sched,
		mailer:    mailer,
		now:       time.Now,
		newID:     reminder.NewID,
	}
}

// Create validates the input, registers the one-shot trigger, and persists the
// record. The trigger is registered first; if persisting then fails, the
// leftover trigger is picked up by SweepOrphanedSchedules.
func (o *Orchestrator) Create(ctx context.Context, input reminder.Input) (*reminder.Reminder, error) {
	due, err := reminder.ParseDueTime(input.DateTime, o.now())
	if err != nil {
		return nil, err
	}

	id := o.newID()
	event := reminder.FireEvent{
		Type: reminder.EventTypeReminderDue,
		Reminder: reminder.FirePayload{
			ID:          id,
			UserID:      input.UserID,
			Email:       input.Email,
			Description: input.Description,
			DateTime:    input.DateTime,
		},
	}

	if err := o.scheduler.CreateOneShot(ctx, id, due, event); err != nil {
		return nil, err
	}

	rec := &reminder.Reminder{
		ID:           id,
		UserID:       input.UserID,
		Email:        input.Email,
		Description:  input.Description,
		DateTime:     input.DateTime,
		CreatedAt:    o.now().UTC().Format(time.RFC3339),
		ScheduleName: id,
		TTL:          due.Unix(),
	}

	if err := o.store.Put(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// List returns all reminders for a user.
func (o *Orchestrator) List(ctx context.Context, userID string) ([]reminder.Reminder, error) {
	return o.store.List(ctx, userID)
}

// Delete cancels the trigger and removes the record. An absent record is
// already-deleted and reported as success; a failed cancellation is logged and
// the record removal proceeds anyway (a trigger that later fires against a
// deleted record is absorbed by HandleFire's idempotent delete).
func (o *Orchestrator) Delete(ctx context.Context, userID, id string) (bool, error) {
	rec, err := o.store.Get(ctx, userID, id)
	if err != nil {
		if store.IsNotFound(err) {
			return true, nil
		}
		return false, err
	}

	if rec.ScheduleName != "" {
		if err := o.scheduler.Cancel(ctx, rec.ScheduleName); err != nil {
			log.Printf("Failed to cancel schedule %s, continuing with deletion: %v", rec.ScheduleName, err)
		}
	}

	if err := o.store.Delete(ctx, userID, id); err != nil {
		return false, err
	}

	return true, nil
}

// HandleFire processes a due-reminder event: send the notification from the
// embedded payload, then remove the record. On dispatch failure the record is
// kept so the scheduler retry policy can re-deliver; the table TTL is the
// last-resort cleanup if it never succeeds.
func (o *Orchestrator) HandleFire(ctx context.Context, event reminder.FireEvent) error {
	r := event.Reminder
	log.Printf("Processing reminder %s for user %s", r.ID, r.UserID)

	if err := o.mailer.Send(ctx, r.Email, r.Description, r.DateTime); err != nil {
		return err
	}

	if err := o.store.Delete(ctx, r.UserID, r.ID); err != nil {
		return err
	}

	log.Printf("Reminder %s processed", r.ID)
	return nil
}

// SweepOrphanedSchedules cancels triggers whose record never got persisted
// (the create path registers the trigger before writing the record, so a
// failed write leaves one behind). Triggers younger than grace are left alone.
// Returns the names of canceled schedules.
func (o *Orchestrator) SweepOrphanedSchedules(ctx context.Context, grace time.Duration) ([]string, error) {
	orphans, err := o.scheduler.ListOrphans(ctx, grace, func(ctx context.Context, userID, id string) (bool, error) {
		_, err := o.store.Get(ctx, userID, id)
		if err != nil {
			if store.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	var canceled []string
	for _, orphan := range orphans {
		if err := o.scheduler.Cancel(ctx, orphan.Name); err != nil {
			log.Printf("Failed to cancel orphaned schedule %s: %v", orphan.Name, err)
			continue
		}
		log.Printf("Canceled orphaned schedule %s (user %s)", orphan.Name, orphan.Event.Reminder.UserID)
		canceled = append(canceled, orphan.Name)
	}

	return canceled, nil
}
