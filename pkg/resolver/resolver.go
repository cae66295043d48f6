// Package resolver dispatches AppSync field invocations to the reminder
// orchestrator.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/lifecycle"
	"github.com/sidathasiri/medical-convo-summarizer/pkg/reminder"
)

// Operation is the closed set of resolver field names.
type Operation string

const (
	OperationList   Operation = "listReminders"
	OperationCreate Operation = "createReminder"
	OperationDelete Operation = "deleteReminder"
)

// Event is the AppSync direct-lambda resolver invocation shape.
type Event struct {
	Info      Info            `json:"info"`
	Arguments json.RawMessage `json:"arguments"`
}

// Info carries the resolved field name.
type Info struct {
	FieldName string `json:"fieldName"`
}

type listArgs struct {
	UserID string `json:"userId"`
}

type deleteArgs struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

// Resolver routes operations to the orchestrator. It holds no business logic.
type Resolver struct {
	orchestrator *lifecycle.Orchestrator
}

// New creates a resolver over the given orchestrator.
func New(o *lifecycle.Orchestrator) *Resolver {
	return &Resolver{orchestrator: o}
}

// Resolve executes the operation named by the event and returns its result.
// Unrecognized field names fail with reminder.ErrUnknownOperation.
func (r *Resolver) Resolve(ctx context.Context, event Event) (any, error) {
	switch Operation(event.Info.FieldName) {
	case OperationList:
		var args listArgs
		if err := json.Unmarshal(event.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: listReminders arguments: %v", reminder.ErrValidation, err)
		}
		return r.orchestrator.List(ctx, args.UserID)

	case OperationCreate:
		var args reminder.Input
		if err := json.Unmarshal(event.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: createReminder arguments: %v", reminder.ErrValidation, err)
		}
		return r.orchestrator.Create(ctx, args)

	case OperationDelete:
		var args deleteArgs
		if err := json.Unmarshal(event.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: deleteReminder arguments: %v", reminder.ErrValidation, err)
		}
		return r.orchestrator.Delete(ctx, args.UserID, args.ID)

	default:
		return nil, fmt.Errorf("%w: %q", reminder.ErrUnknownOperation, event.Info.FieldName)
	}
}
