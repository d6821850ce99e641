package storage

import (
	"time"
)

const (
	DefaultAdvanceMinutes = 10
	// MaxAdvanceMinutes is ten years.
	MaxAdvanceMinutes = 10 * 366 * 24 * 60

	minutesPerDay = 24 * 60
)

type Event struct {
	ID             int64  `db:"id" json:"id"`
	Title          string `db:"title" json:"title"`
	EventTime      string `db:"event_datetime" json:"eventDatetime"`
	Description    string `db:"description" json:"description"`
	AdvanceMinutes int    `db:"advance_minutes" json:"advanceMinutes"`
	Notified       bool   `db:"notified" json:"notified"`
	CreatedAt      string `db:"created_at" json:"createdAt"`
}

// PendingEvent is an event which notify time has come.
type PendingEvent struct {
	Event
	EventAt  time.Time `json:"eventAt"`
	NotifyAt time.Time `json:"notifyAt"`
}

// NotifyTime subtracts whole days on the UTC clock, so values above the
// time.Duration range do not wrap.
func NotifyTime(eventAt time.Time, advanceMinutes int) time.Time {
	days := advanceMinutes / minutesPerDay
	minutes := advanceMinutes % minutesPerDay
	return eventAt.UTC().
		AddDate(0, 0, -days).
		Add(-time.Duration(minutes) * time.Minute).
		In(eventAt.Location())
}
