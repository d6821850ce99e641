package storage

import (
	"sort"
	"time"
)

// SelectPending returns not notified events which notify time is not after now,
// ordered by event time. Events with unparsable time are returned as skipped.
func SelectPending(events []Event, now time.Time, loc *time.Location) ([]PendingEvent, []Event) {
	pending := make([]PendingEvent, 0)
	var skipped []Event
	for _, e := range events {
		if e.Notified {
			continue
		}
		eventAt, ok := ParseEventTime(e.EventTime, loc)
		if !ok {
			skipped = append(skipped, e)
			continue
		}
		notifyAt := NotifyTime(eventAt, e.AdvanceMinutes)
		if now.Before(notifyAt) {
			continue
		}
		pending = append(pending, PendingEvent{Event: e, EventAt: eventAt, NotifyAt: notifyAt})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].EventAt.Equal(pending[j].EventAt) {
			return pending[i].EventAt.Before(pending[j].EventAt)
		}
		return pending[i].ID < pending[j].ID
	})
	return pending, skipped
}

// SelectFutureNotified returns IDs of notified events scheduled strictly after now.
func SelectFutureNotified(events []Event, now time.Time, loc *time.Location) []int64 {
	var ids []int64
	for _, e := range events {
		if !e.Notified {
			continue
		}
		eventAt, ok := ParseEventTime(e.EventTime, loc)
		if ok && eventAt.After(now) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// SortEvents orders events by event time. Events with unparsable time go last.
func SortEvents(events []Event, loc *time.Location) {
	times := make(map[int64]time.Time, len(events))
	for _, e := range events {
		if t, ok := ParseEventTime(e.EventTime, loc); ok {
			times[e.ID] = t
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		ti, iok := times[events[i].ID]
		tj, jok := times[events[j].ID]
		switch {
		case iok && jok:
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
			return events[i].ID < events[j].ID
		case iok != jok:
			return iok
		default:
			return events[i].ID < events[j].ID
		}
	})
}
