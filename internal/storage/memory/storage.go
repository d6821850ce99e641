package memorystorage

import (
	"context"
	"sync"
	"time"

	"github.com/jmhodges/clock"
	"github.com/lomoval/reminder/internal/storage"
	log "github.com/sirupsen/logrus"
)

type Storage struct {
	mu    sync.RWMutex
	data  map[int64]storage.Event
	idSeq int64
	loc   *time.Location
	clk   clock.Clock
}

func New(clk clock.Clock, loc *time.Location) *Storage {
	if loc == nil {
		loc = time.Local
	}
	return &Storage{data: make(map[int64]storage.Event), clk: clk, loc: loc}
}

func (s *Storage) Connect(_ context.Context) error {
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	return nil
}

func (s *Storage) Init(_ context.Context) error {
	return nil
}

func (s *Storage) AddEvent(_ context.Context, e *storage.Event) error {
	if err := storage.ValidateEvent(*e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.idSeq++
	e.ID = s.idSeq
	e.Notified = false
	e.CreatedAt = s.clk.Now().UTC().Format(storage.CreatedAtLayout)
	s.data[e.ID] = *e
	return nil
}

func (s *Storage) UpdateEvent(_ context.Context, id int64, e storage.Event) error {
	if err := storage.ValidateEvent(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.data[id]
	if !ok {
		return nil
	}
	stored.Title = e.Title
	stored.EventTime = e.EventTime
	stored.Description = e.Description
	stored.AdvanceMinutes = e.AdvanceMinutes
	s.data[id] = stored
	return nil
}

func (s *Storage) RemoveEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *Storage) ListEvents(_ context.Context) ([]storage.Event, error) {
	events := s.snapshot()
	storage.SortEvents(events, s.loc)
	return events, nil
}

func (s *Storage) MarkNotified(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.data[id]; ok {
		e.Notified = true
		s.data[id] = e
	}
	return nil
}

func (s *Storage) ResetNotifiedForFuture(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]storage.Event, 0, len(s.data))
	for _, e := range s.data {
		events = append(events, e)
	}

	var n int64
	for _, id := range storage.SelectFutureNotified(events, s.clk.Now(), s.loc) {
		e := s.data[id]
		e.Notified = false
		s.data[id] = e
		n++
	}
	return n, nil
}

func (s *Storage) GetPendingEvents(_ context.Context) ([]storage.PendingEvent, error) {
	pending, skipped := storage.SelectPending(s.snapshot(), s.clk.Now(), s.loc)
	for _, e := range skipped {
		log.WithField("id", e.ID).WithField("event_datetime", e.EventTime).
			Warn("skipping event with unparsable time")
	}
	return pending, nil
}

func (s *Storage) snapshot() []storage.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]storage.Event, 0, len(s.data))
	for _, e := range s.data {
		events = append(events, e)
	}
	return events
}
