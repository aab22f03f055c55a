package task

import (
	"cmp"
	"slices"
	"strconv"
	"time"
)

type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) String() string {
	return ym.Month.String() + " " + strconv.Itoa(ym.Year)
}

// Calendar groups tasks by the year, month and day of their parsed deadline.
// Tasks whose deadline does not parse are left out. Within a day tasks keep
// collection order.
type Calendar struct {
	days map[YearMonth]map[int][]Task
}

func BuildCalendar(tasks []Task, loc *time.Location) Calendar {
	c := Calendar{days: map[YearMonth]map[int][]Task{}}
	for _, t := range tasks {
		d, ok := ParseDeadline(t.Deadline, loc)
		if !ok {
			continue
		}
		ym := YearMonth{Year: d.Year(), Month: d.Month()}
		if c.days[ym] == nil {
			c.days[ym] = map[int][]Task{}
		}
		c.days[ym][d.Day()] = append(c.days[ym][d.Day()], t.Clone())
	}
	return c
}

// Calendar groups the store's tasks by deadline in the local time zone.
func (s *Store) Calendar() Calendar {
	return BuildCalendar(s.Tasks(), time.Local)
}

// Months lists every month holding at least one task, oldest first.
func (c Calendar) Months() []YearMonth {
	out := make([]YearMonth, 0, len(c.days))
	for ym := range c.days {
		out = append(out, ym)
	}
	slices.SortFunc(out, func(a, b YearMonth) int {
		if a.Year != b.Year {
			return cmp.Compare(a.Year, b.Year)
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// Years maps year to month to day, the shape a month grid is drawn from.
func (c Calendar) Years() map[int]map[time.Month]map[int][]Task {
	out := map[int]map[time.Month]map[int][]Task{}
	for ym, days := range c.days {
		if out[ym.Year] == nil {
			out[ym.Year] = map[time.Month]map[int][]Task{}
		}
		out[ym.Year][ym.Month] = days
	}
	return out
}

func (c Calendar) Day(year int, month time.Month, day int) []Task {
	return c.days[YearMonth{year, month}][day]
}

func (c Calendar) Len() int {
	n := 0
	for _, days := range c.days {
		for _, ts := range days {
			n += len(ts)
		}
	}
	return n
}

// Cell is one slot of a month grid. Day is zero for padding slots before the
// first and after the last day of the month.
type Cell struct {
	Day   int
	Tasks []Task
}

type MonthGrid struct {
	YearMonth
	// FirstWeekday is the column of day 1, Monday being 0.
	FirstWeekday int
	Days         int
	Weeks        [][7]Cell
}

// Grid lays out year/month as Monday-first weeks.
func (c Calendar) Grid(year int, month time.Month) MonthGrid {
	g := MonthGrid{
		YearMonth:    YearMonth{year, month},
		FirstWeekday: FirstWeekday(year, month),
		Days:         DaysIn(year, month),
	}
	days := c.days[g.YearMonth]
	slots := g.FirstWeekday + g.Days
	g.Weeks = make([][7]Cell, (slots+6)/7)
	for day := 1; day <= g.Days; day++ {
		pos := g.FirstWeekday + day - 1
		g.Weeks[pos/7][pos%7] = Cell{Day: day, Tasks: days[day]}
	}
	return g
}

// FirstWeekday returns the weekday of the first of the month with Monday as 0.
func FirstWeekday(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// IsLeap applies the Gregorian rule: divisible by 4, except centuries not
// divisible by 400.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

