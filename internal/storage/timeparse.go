package storage

import (
	"fmt"
	"strings"
	"time"
)

// EventTimeLayout is the layout used for writing event times.
const EventTimeLayout = "2006-01-02T15:04"

// FallbackTimeLayout is accepted on read for records written by hand.
const FallbackTimeLayout = "2006-01-02 15:04"

// CreatedAtLayout matches sqlite CURRENT_TIMESTAMP.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Both "T" and space separators are ISO date-time, as sqlite writes the latter.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	EventTimeLayout,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseEventTime parses ISO-8601 date-time first and "YYYY-MM-DD HH:MM" after it.
// Values without a zone offset are taken in loc.
func ParseEventTime(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if t, ok := parseISO(value, loc); ok {
		return t, true
	}
	t, err := time.ParseInLocation(FallbackTimeLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatEventTime(t time.Time) string {
	return t.Format(EventTimeLayout)
}

// LoadLocation returns local zone for empty name.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

func parseISO(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
