// Package task holds the task collection engine: the Task record, the
// Store with its undo history, queries over the collection and deadline
// helpers used to classify and group tasks on a calendar.
package task

import "slices"

type Priority int

const (
	Low Priority = iota
	Medium
	High
)

func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	default:
		return "High"
	}
}

// ParsePriority decodes the persisted priority name. Unknown names decode to
// High and ok is false.
func ParsePriority(s string) (p Priority, ok bool) {
	switch s {
	case "Low":
		return Low, true
	case "Medium":
		return Medium, true
	case "High":
		return High, true
	}
	return High, false
}

type Status int

const (
	Active Status = iota
	Done
)

func (s Status) String() string {
	if s == Done {
		return "Done"
	}
	return "Active"
}

// ParseStatus decodes the persisted status name. Unknown names decode to
// Active and ok is false.
func ParseStatus(s string) (st Status, ok bool) {
	switch s {
	case "Active":
		return Active, true
	case "Done":
		return Done, true
	}
	return Active, false
}

// DecodeWarning records a field whose value was not recognised and was
// replaced by its default while decoding record number Record.
type DecodeWarning struct {
	Record int
	Field  string
	Value  string
}

type Task struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
	Deadline    string
	Tags        []string
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	t.Tags = slices.Clone(t.Tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

// HasTag reports whether tag is one of t's tags, compared exactly.
func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}
