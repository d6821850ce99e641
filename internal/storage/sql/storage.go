package sqlstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmhodges/clock"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/lomoval/reminder/internal/storage"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // sqlite driver
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultPath = "events.db"
)

const createTableTmpl = `CREATE TABLE IF NOT EXISTS events (
	id %s,
	title TEXT NOT NULL,
	event_datetime TEXT NOT NULL,
	description TEXT DEFAULT '',
	advance_minutes INTEGER DEFAULT 10,
	notified INTEGER DEFAULT 0,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
)`

var idColumns = map[string]string{
	DriverSqlite:   "INTEGER PRIMARY KEY AUTOINCREMENT",
	DriverPostgres: "BIGSERIAL PRIMARY KEY",
}

const selectEvents = "SELECT id, title, event_datetime, COALESCE(description, '') AS description, " +
	"COALESCE(advance_minutes, 10) AS advance_minutes, COALESCE(notified, 0) AS notified, " +
	"COALESCE(created_at, '') AS created_at FROM events"

type Config struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Timezone string
}

type Storage struct {
	driver string
	dsn    string
	loc    *time.Location
	clk    clock.Clock
	db     *sqlx.DB
}

func New(config Config, clk clock.Clock) (*Storage, error) {
	driver := config.Driver
	if driver == "" {
		driver = DriverSqlite
	}
	if _, ok := idColumns[driver]; !ok {
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
	loc, err := storage.LoadLocation(config.Timezone)
	if err != nil {
		return nil, err
	}
	return &Storage{driver: driver, dsn: dsn(driver, config), loc: loc, clk: clk}, nil
}

// NewWithDB wraps already opened connection.
func NewWithDB(db *sqlx.DB, config Config, clk clock.Clock) (*Storage, error) {
	s, err := New(config, clk)
	if err != nil {
		return nil, err
	}
	s.db = db
	return s, nil
}

func (s *Storage) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, s.driver, s.dsn)
	if err != nil {
		log.Errorf("failed to connect: %v", err)
		return fmt.Errorf("%w: %v", storage.ErrConnectionFailed, err)
	}
	if s.driver == DriverSqlite {
		// Single writer for the database file.
		db.SetMaxOpenConns(1)
	}
	s.db = db
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (s *Storage) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(createTableTmpl, idColumns[s.driver]))
	if err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	return nil
}

func (s *Storage) AddEvent(ctx context.Context, e *storage.Event) error {
	if err := storage.ValidateEvent(*e); err != nil {
		return err
	}

	e.Notified = false
	e.CreatedAt = s.clk.Now().UTC().Format(storage.CreatedAtLayout)
	err := s.db.GetContext(
		ctx,
		&e.ID,
		s.db.Rebind("INSERT INTO events(title, event_datetime, description, advance_minutes, notified, created_at) "+
			"VALUES(?, ?, ?, ?, 0, ?) RETURNING id"),
		e.Title, e.EventTime, e.Description, e.AdvanceMinutes, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func (s *Storage) UpdateEvent(ctx context.Context, id int64, e storage.Event) error {
	if err := storage.ValidateEvent(e); err != nil {
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		s.db.Rebind("UPDATE events SET title=?, event_datetime=?, description=?, advance_minutes=? WHERE id=?"),
		e.Title,
		e.EventTime,
		e.Description,
		e.AdvanceMinutes,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update event with id %d: %w", id, err)
	}
	return nil
}

func (s *Storage) RemoveEvent(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM events WHERE id=?"), id)
	if err != nil {
		return fmt.Errorf("failed to remove event with id %d: %w", id, err)
	}
	return nil
}

func (s *Storage) ListEvents(ctx context.Context) ([]storage.Event, error) {
	events := make([]storage.Event, 0)
	err := s.db.SelectContext(ctx, &events, selectEvents+" ORDER BY event_datetime ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	storage.SortEvents(events, s.loc)
	return events, nil
}

func (s *Storage) MarkNotified(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("UPDATE events SET notified=1 WHERE id=?"), id)
	if err != nil {
		return fmt.Errorf("failed to mark event %d as notified: %w", id, err)
	}
	return nil
}

func (s *Storage) ResetNotifiedForFuture(ctx context.Context) (int64, error) {
	var events []storage.Event
	err := s.db.SelectContext(ctx, &events, selectEvents+" WHERE notified=1")
	if err != nil {
		return 0, fmt.Errorf("failed to select notified events: %w", err)
	}

	ids := storage.SelectFutureNotified(events, s.clk.Now(), s.loc)
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("UPDATE events SET notified=0 WHERE notified=1 AND id IN (?)", ids)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare reset query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to reset notified events: %w", err)
	}
	return res.RowsAffected()
}

func (s *Storage) GetPendingEvents(ctx context.Context) ([]storage.PendingEvent, error) {
	var events []storage.Event
	err := s.db.SelectContext(ctx, &events, selectEvents+" WHERE notified=0 ORDER BY event_datetime ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}

	pending, skipped := storage.SelectPending(events, s.clk.Now(), s.loc)
	for _, e := range skipped {
		log.WithField("id", e.ID).WithField("event_datetime", e.EventTime).
			Warn("skipping event with unparsable time")
	}
	return pending, nil
}

func dsn(driver string, config Config) string {
	switch driver {
	case DriverPostgres:
		return fmt.Sprintf(
			"sslmode=disable host=%s port=%d dbname=%s user=%s password=%s",
			config.Host, config.Port, config.Database, config.Username, config.Password)
	default:
		path := config.Path
		if path == "" {
			path = DefaultPath
		}
		return path
	}
}
