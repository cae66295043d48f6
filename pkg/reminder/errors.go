package reminder

import "errors"

// Error categories surfaced by the lifecycle engine. Callers match with
// errors.Is; the wrapping text carries the operation detail.
var (
	// ErrValidation marks a malformed or past-due dateTime. No side effects
	// have been performed when it is returned.
	ErrValidation = errors.New("invalid reminder input")

	// ErrScheduling marks a rejected one-shot schedule registration. Create
	// aborts without persisting anything.
	ErrScheduling = errors.New("failed to create reminder schedule")

	// ErrStore marks a transient persistence failure.
	ErrStore = errors.New("reminder store failure")

	// ErrDispatch marks a notification send failure during fire. The record
	// is retained so the scheduler's retry policy can re-deliver.
	ErrDispatch = errors.New("reminder notification failure")

	// ErrNotFound is returned by point lookups for absent records.
	ErrNotFound = errors.New("reminder not found")

	// ErrUnknownOperation marks an unrecognized resolver field name.
	ErrUnknownOperation = errors.New("unknown operation")
)
