package task

import "time"

// DeadlineLayout is the canonical deadline format, YYYY-MM-DD HH:MM.
const DeadlineLayout = "2006-01-02 15:04"

const urgentWindow = 24 * time.Hour

// Clock supplies the current instant to deadline classification.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in the local time zone.
var SystemClock Clock = ClockFunc(time.Now)

// ParseDeadline parses deadline in loc. A nil loc means time.Local.
func ParseDeadline(deadline string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DeadlineLayout, deadline, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsOverdue reports whether deadline is strictly before now. Unparsable
// deadlines are never overdue.
func IsOverdue(deadline string, now time.Time) bool {
	d, ok := ParseDeadline(deadline, now.Location())
	return ok && d.Before(now)
}

// IsUrgent reports whether deadline falls in (now, now+24h].
func IsUrgent(deadline string, now time.Time) bool {
	d, ok := ParseDeadline(deadline, now.Location())
	if !ok {
		return false
	}
	left := d.Sub(now)
	return left > 0 && left <= urgentWindow
}

type Urgency int

const (
	Normal Urgency = iota
	Urgent
	Overdue
	Unparsed
)

func (u Urgency) String() string {
	switch u {
	case Urgent:
		return "urgent"
	case Overdue:
		return "overdue"
	case Unparsed:
		return "unparsed"
	default:
		return "normal"
	}
}

func Classify(deadline string, now time.Time) Urgency {
	if _, ok := ParseDeadline(deadline, now.Location()); !ok {
		return Unparsed
	}
	switch {
	case IsOverdue(deadline, now):
		return Overdue
	case IsUrgent(deadline, now):
		return Urgent
	}
	return Normal
}
