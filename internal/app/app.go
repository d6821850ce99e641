package app

import (
	"context"
	"time"

	"github.com/lomoval/reminder/internal/storage"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Storage storage.Storage
}

type EventParams struct {
	Title       string
	Time        time.Time
	Description string
	// Nil means storage.DefaultAdvanceMinutes.
	AdvanceMinutes *int
}

func New(storage storage.Storage) *App {
	return &App{Storage: storage}
}

func (a *App) CreateEvent(ctx context.Context, p EventParams) (int64, error) {
	e := newEvent(p)
	if err := a.Storage.AddEvent(ctx, &e); err != nil {
		return 0, err
	}
	log.WithField("id", e.ID).WithField("event_datetime", e.EventTime).Debug("event added")
	return e.ID, nil
}

func (a *App) UpdateEvent(ctx context.Context, id int64, p EventParams) error {
	e := newEvent(p)
	if err := a.Storage.UpdateEvent(ctx, id, e); err != nil {
		return err
	}
	log.WithField("id", id).WithField("event_datetime", e.EventTime).Debug("event updated")
	return nil
}

func (a *App) RemoveEvent(ctx context.Context, id int64) error {
	return a.Storage.RemoveEvent(ctx, id)
}

func (a *App) ListEvents(ctx context.Context) ([]storage.Event, error) {
	return a.Storage.ListEvents(ctx)
}

func (a *App) MarkNotified(ctx context.Context, id int64) error {
	return a.Storage.MarkNotified(ctx, id)
}

func (a *App) ResetNotifiedForFuture(ctx context.Context) (int64, error) {
	n, err := a.Storage.ResetNotifiedForFuture(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Infof("notification reset for %d future events", n)
	}
	return n, nil
}

func (a *App) PendingEvents(ctx context.Context) ([]storage.PendingEvent, error) {
	events, err := a.Storage.GetPendingEvents(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func newEvent(p EventParams) storage.Event {
	advance := storage.DefaultAdvanceMinutes
	if p.AdvanceMinutes != nil {
		advance = *p.AdvanceMinutes
	}
	e := storage.Event{
		Title:          p.Title,
		Description:    p.Description,
		AdvanceMinutes: advance,
	}
	if !p.Time.IsZero() {
		e.EventTime = storage.FormatEventTime(p.Time)
	}
	return e
}
