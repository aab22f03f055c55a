// Package storage persists a user's task collection. Every backend stores the
// whole collection on Save and reads it back in order on Load.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"taskgrid/internal/task"
)

var (
	ErrMissingField   = errors.New("missing required field")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Gateway loads and saves one user's tasks.
type Gateway interface {
	Load() (Loaded, error)
	Save([]task.Task) error
	Close() error
}

// Loaded is the result of a successful load. Warnings lists values that were
// not recognised and were replaced by their defaults.
type Loaded struct {
	Tasks    []task.Task
	Warnings []task.DecodeWarning
}

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Open returns the gateway for username inside dir.
func Open(backend Backend, dir, username string) (Gateway, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFile(filepath.Join(dir, FileName(username, "json"))), nil
	case BackendSQLite:
		s, err := OpenSQLite(filepath.Join(dir, FileName(username, "db")))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownBackend, backend)
}

// FileName derives the per-user file name, e.g. "alice_tasks.json".
// Letters, digits, '-' and '_' are kept; every other byte of the username is
// written as %XX, so distinct usernames never share a file and no path
// separator survives.
func FileName(username, ext string) string {
	return escapeName(username) + "_tasks." + ext
}

func escapeName(input string) string {
	var b strings.Builder
	for i, w := 0, 0; i < len(input); i += w {
		r, size := utf8.DecodeRuneInString(input[i:])
		w = size
		if r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			b.WriteString(input[i : i+size])
			continue
		}
		for _, c := range []byte(input[i : i+size]) {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// record is the persisted shape of a task. Pointer fields tell a missing key
// apart from an empty value.
type record struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	Status      *string   `json:"status"`
	Deadline    *string   `json:"deadline"`
	Tags        *[]string `json:"tags"`
}

func toRecord(t task.Task) record {
	priority := t.Priority.String()
	status := t.Status.String()
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return record{
		Title:       &t.Title,
		Description: &t.Description,
		Priority:    &priority,
		Status:      &status,
		Deadline:    &t.Deadline,
		Tags:        &tags,
	}
}

func (r record) decode(n int) (task.Task, []task.DecodeWarning, error) {
	missing := func(field string) error {
		return fmt.Errorf("record %d: %w %q", n, ErrMissingField, field)
	}
	switch {
	case r.Title == nil:
		return task.Task{}, nil, missing("title")
	case r.Description == nil:
		return task.Task{}, nil, missing("description")
	case r.Priority == nil:
		return task.Task{}, nil, missing("priority")
	case r.Status == nil:
		return task.Task{}, nil, missing("status")
	case r.Deadline == nil:
		return task.Task{}, nil, missing("deadline")
	case r.Tags == nil:
		return task.Task{}, nil, missing("tags")
	}

	var warnings []task.DecodeWarning
	priority, ok := task.ParsePriority(*r.Priority)
	if !ok {
		warnings = append(warnings, task.DecodeWarning{Record: n, Field: "priority", Value: *r.Priority})
	}
	status, ok := task.ParseStatus(*r.Status)
	if !ok {
		warnings = append(warnings, task.DecodeWarning{Record: n, Field: "status", Value: *r.Status})
	}
	t := task.Task{
		Title:       *r.Title,
		Description: *r.Description,
		Priority:    priority,
		Status:      status,
		Deadline:    *r.Deadline,
		Tags:        *r.Tags,
	}
	return t.Clone(), warnings, nil
}

func decodeAll(records []record) (Loaded, error) {
	out := Loaded{Tasks: make([]task.Task, 0, len(records))}
	for i, r := range records {
		t, warnings, err := r.decode(i)
		if err != nil {
			return Loaded{}, err
		}
		out.Tasks = append(out.Tasks, t)
		out.Warnings = append(out.Warnings, warnings...)
	}
	return out, nil
}
