package booking

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns the interval [start, end).
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Overlaps reports whether two intervals share any instant. Intervals that
// only touch at an endpoint do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// HasConflict reports whether candidate overlaps any of existing. Callers pass
// only confirmed bookings of the same room.
func HasConflict(candidate Interval, existing []Interval) bool {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return true
		}
	}
	return false
}

// FindConflicts returns every element of existing that overlaps candidate,
// in input order.
func FindConflicts(candidate Interval, existing []Interval) []Interval {
	var out []Interval
	for _, e := range existing {
		if candidate.Overlaps(e) {
			out = append(out, e)
		}
	}
	return out
}

// DayWindow returns [00:00:00.000, 23:59:59.999] of the calendar day that
// contains t, in t's location.
func DayWindow(t time.Time) Interval {
	y, m, d := t.Date()
	return Interval{
		Start: time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
		End:   time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location()),
	}
}

// DurationHours rounds the length of [start, end) up to whole hours.
func DurationHours(start, end time.Time) int {
	d := end.Sub(start)
	hours := int(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}
