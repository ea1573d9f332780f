// Package daterange provides date arithmetic for the availability calendar.
// All dates are normalized to midnight UTC, and every interval is half-open:
// a stay [checkIn, checkOut) occupies its check-in night but not the
// check-out day.
package daterange

import (
	"fmt"
	"time"

	"hotelbooker/pkg/model"
)

// DateOf normalizes t to midnight UTC, discarding the time-of-day component.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD wire date into a normalized UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// Span expands an anchor date into the ordered list of dates the given view
// mode displays. Daily yields the anchor alone, weekly yields the
// Sunday-through-Saturday week containing the anchor, and monthly yields
// every date of the anchor's calendar month.
func Span(anchor time.Time, view model.ViewMode) ([]time.Time, error) {
	anchor = DateOf(anchor)

	switch view {
	case model.ViewDaily:
		return []time.Time{anchor}, nil

	case model.ViewWeekly:
		start := anchor.AddDate(0, 0, -int(anchor.Weekday()))
		dates := make([]time.Time, 7)
		for i := range dates {
			dates[i] = start.AddDate(0, 0, i)
		}
		return dates, nil

	case model.ViewMonthly:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		dates := make([]time.Time, 0, 31)
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		return dates, nil

	default:
		return nil, fmt.Errorf("unknown view mode %q", view)
	}
}

// Range is a half-open [Start, End) date interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange normalizes both endpoints to midnight UTC.
func NewRange(start, end time.Time) Range {
	return Range{Start: DateOf(start), End: DateOf(end)}
}

// Valid reports whether the range spans at least one night.
func (r Range) Valid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether two half-open ranges share at least one night.
// Back-to-back stays, where one range ends exactly where the other begins,
// do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Covers reports whether date falls inside the range. The start date is
// covered, the end date is not.
func (r Range) Covers(date time.Time) bool {
	date = DateOf(date)
	return !date.Before(r.Start) && date.Before(r.End)
}

// Nights returns the number of nights the range spans.
func (r Range) Nights() int {
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}

// Shift moves the range to begin at start while preserving its length.
func (r Range) Shift(start time.Time) Range {
	start = DateOf(start)
	return Range{Start: start, End: start.AddDate(0, 0, r.Nights())}
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}
