package storage

import (
	"context"
	"errors"
)

var (
	ErrEmptyTitle       = errors.New("event title is required")
	ErrEmptyEventTime   = errors.New("event time is required")
	ErrIncorrectAdvance = errors.New("advance minutes must not be negative")
	ErrAdvanceTooLarge  = errors.New("advance minutes is too large")
	ErrConnectionFailed = errors.New("failed to connect")
)

// Storage keeps events. Implementations store AdvanceMinutes as given:
// a zero value means notification at the event time, not DefaultAdvanceMinutes.
// Use app.CreateEvent to get the default applied.
type Storage interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Init(ctx context.Context) error
	// AddEvent stores e with notified=false and fills its ID and CreatedAt.
	AddEvent(ctx context.Context, e *Event) error
	UpdateEvent(ctx context.Context, id int64, e Event) error
	RemoveEvent(ctx context.Context, id int64) error
	ListEvents(ctx context.Context) ([]Event, error)
	MarkNotified(ctx context.Context, id int64) error
	ResetNotifiedForFuture(ctx context.Context) (int64, error)
	GetPendingEvents(ctx context.Context) ([]PendingEvent, error)
}

func ValidateEvent(e Event) error {
	if e.Title == "" {
		return ErrEmptyTitle
	}
	if e.EventTime == "" {
		return ErrEmptyEventTime
	}
	if e.AdvanceMinutes < 0 {
		return ErrIncorrectAdvance
	}
	if e.AdvanceMinutes > MaxAdvanceMinutes {
		return ErrAdvanceTooLarge
	}
	return nil
}
