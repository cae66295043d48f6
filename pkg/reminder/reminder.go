package reminder

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventTypeReminderDue tags the payload EventBridge Scheduler delivers to the
// fire handler when a reminder comes due.
const EventTypeReminderDue = "REMINDER_DUE"

// Input carries the arguments of a createReminder request.
type Input struct {
	UserID      string `json:"userId"`
	Description string `json:"description"`
	DateTime    string `json:"dateTime"`
	Email       string `json:"email"`
}

// Reminder is the persisted reminder record. UserID is the DynamoDB partition
// key and ID the sort key. TTL holds the due instant in epoch seconds so the
// table can reap records that were never fired or deleted; the fire and delete
// paths remain the primary removal mechanisms.
type Reminder struct {
	ID           string `json:"id" dynamodbav:"id"`
	UserID       string `json:"userId" dynamodbav:"userId"`
	Email        string `json:"email" dynamodbav:"email"`
	Description  string `json:"description" dynamodbav:"description"`
	DateTime     string `json:"dateTime" dynamodbav:"dateTime"`
	CreatedAt    string `json:"createdAt" dynamodbav:"createdAt"`
	ScheduleName string `json:"scheduleName,omitempty" dynamodbav:"scheduleName"`
	TTL          int64  `json:"ttl,omitempty" dynamodbav:"ttl"`
}

// FirePayload is the reminder data embedded in the schedule target input. It
// carries everything the fire handler needs so that no store read is required
// when the reminder comes due.
type FirePayload struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Description string `json:"description"`
	DateTime    string `json:"dateTime"`
}

// FireEvent is the full schedule target input, discriminated by Type.
type FireEvent struct {
	Type     string      `json:"type"`
	Reminder FirePayload `json:"reminder"`
}

// NewID returns a fresh reminder identifier. The uuid suffix gives 122 bits of
// entropy, so collisions across users are negligible.
func NewID() string {
	return fmt.Sprintf("rem_%s", uuid.NewString())
}

// ParseDueTime validates a createReminder dateTime. The value must be RFC 3339
// with an explicit offset or Z and must lie strictly in the future.
func ParseDueTime(value string, now time.Time) (time.Time, error) {
	due, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dateTime must be ISO 8601 with an explicit offset or Z (e.g. \"2025-06-14T15:00:00Z\"): %q", ErrValidation, value)
	}
	if !due.After(now) {
		return time.Time{}, fmt.Errorf("%w: dateTime must be in the future: %q", ErrValidation, value)
	}
	return due, nil
}
