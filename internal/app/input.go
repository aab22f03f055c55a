package app

import (
	"fmt"
	"slices"
	"strings"

	"taskgrid/internal/task"
)

// SplitTags turns "work, home,,urgent" into [work home urgent].
func SplitTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

type Order int

const (
	Unsorted Order = iota
	Ascending
	Descending
)

func (o Order) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return "none"
}

// Next cycles none -> asc -> desc -> none.
func (o Order) Next() Order {
	return (o + 1) % 3
}

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return Unsorted, nil
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return Unsorted, fmt.Errorf("unknown sort order %q", s)
}

// SortByDeadline returns entries ordered by raw deadline string. Equal
// deadlines keep their relative order.
func SortByDeadline(entries []task.Entry, o Order) []task.Entry {
	out := slices.Clone(entries)
	switch o {
	case Ascending:
		slices.SortStableFunc(out, func(a, b task.Entry) int {
			return strings.Compare(a.Task.Deadline, b.Task.Deadline)
		})
	case Descending:
		slices.SortStableFunc(out, func(a, b task.Entry) int {
			return strings.Compare(b.Task.Deadline, a.Task.Deadline)
		})
	}
	return out
}

// Filter narrows a listing the way the list views do. Zero values match
// everything.
type Filter struct {
	Tag     string
	Status  *task.Status
	Keyword string
}

func (f Filter) Match(t task.Task) bool {
	if f.Tag != "" && !t.HasTag(f.Tag) {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Keyword != "" && !strings.Contains(t.Title, f.Keyword) && !strings.Contains(t.Description, f.Keyword) {
		return false
	}
	return true
}

func (f Filter) Apply(entries []task.Entry) []task.Entry {
	out := []task.Entry{}
	for _, e := range entries {
		if f.Match(e.Task) {
			out = append(out, e)
		}
	}
	return out
}

// ParseTaskFields builds a task from form text. Unknown priority or status
// text falls back to High or Active and is reported in warnings.
func ParseTaskFields(title, desc, priority, status, deadline, tags string) (task.Task, []string) {
	var warnings []string
	p, ok := task.ParsePriority(strings.TrimSpace(priority))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("priority %q not recognised, using %s", priority, p))
	}
	st, ok := task.ParseStatus(strings.TrimSpace(status))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("status %q not recognised, using %s", status, st))
	}
	return task.Task{
		Title:       title,
		Description: desc,
		Priority:    p,
		Status:      st,
		Deadline:    strings.TrimSpace(deadline),
		Tags:        SplitTags(tags),
	}, warnings
}
