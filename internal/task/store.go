package task

import (
	"slices"

	"github.com/google/uuid"
)

// ID identifies a stored task for as long as the process lives. Ids are not
// persisted; a task gets a fresh one each time it enters a Store.
type ID string

func newID() ID {
	return ID(uuid.NewString())
}

// Entry pairs a task with the id the store assigned to it.
type Entry struct {
	ID   ID
	Task Task
}

type snapshot []Entry

// Store owns an ordered collection of tasks plus its undo and redo history.
//
// History is a stack of full snapshots: every mutation pushes a copy of the
// whole collection, so each entry costs O(n) space. Undo pops the latest
// snapshot and moves the current collection onto the redo stack. Mutations
// that change nothing (out of range index, unknown id) push nothing.
//
// A Store is not safe for concurrent use.
type Store struct {
	entries []Entry
	history []snapshot
	future  []snapshot
}

func NewStore() *Store {
	return &Store{}
}

// NewStoreWith returns a store holding tasks with an empty history.
func NewStoreWith(tasks []Task) *Store {
	s := NewStore()
	for _, t := range tasks {
		s.entries = append(s.entries, Entry{ID: newID(), Task: t.Clone()})
	}
	return s
}

func (s *Store) Len() int {
	return len(s.entries)
}

// HistoryLen is the number of undoable mutations.
func (s *Store) HistoryLen() int {
	return len(s.history)
}

// Tasks returns a copy of the collection in storage order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Task.Clone()
	}
	return out
}

// Entries returns a copy of the collection with the id of every task.
func (s *Store) Entries() []Entry {
	return s.copyEntries()
}

// Get returns the task at index i.
func (s *Store) Get(i int) (Task, bool) {
	if !s.inRange(i) {
		return Task{}, false
	}
	return s.entries[i].Task.Clone(), true
}

// IndexOf returns the current index of id, or -1.
func (s *Store) IndexOf(id ID) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
}

// Add appends t and returns its id.
func (s *Store) Add(t Task) ID {
	s.checkpoint()
	id := newID()
	s.entries = append(s.entries, Entry{ID: id, Task: t.Clone()})
	return id
}

// Delete removes the task at index i, shifting later tasks down by one.
// It reports false and leaves the history untouched if i is out of range.
func (s *Store) Delete(i int) bool {
	if !s.inRange(i) {
		return false
	}
	s.checkpoint()
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

func (s *Store) DeleteID(id ID) bool {
	return s.Delete(s.IndexOf(id))
}

// Edit replaces the task at index i with updated, keeping its position and id.
func (s *Store) Edit(i int, updated Task) bool {
	if !s.inRange(i) {
		return false
	}
	s.checkpoint()
	s.entries[i].Task = updated.Clone()
	return true
}

func (s *Store) EditID(id ID, updated Task) bool {
	return s.Edit(s.IndexOf(id), updated)
}

// Undo restores the collection to how it was before the last mutation.
func (s *Store) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := len(s.history) - 1
	s.future = append(s.future, s.copyEntries())
	s.entries = s.history[last]
	s.history = s.history[:last]
	return true
}

// Redo reapplies the last undone mutation. Any mutation made after an undo
// discards the redo stack.
func (s *Store) Redo() bool {
	if len(s.future) == 0 {
		return false
	}
	last := len(s.future) - 1
	s.history = append(s.history, s.copyEntries())
	s.entries = s.future[last]
	s.future = s.future[:last]
	return true
}

func (s *Store) checkpoint() {
	s.history = append(s.history, s.copyEntries())
	s.future = nil
}

func (s *Store) copyEntries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = Entry{ID: e.ID, Task: e.Task.Clone()}
	}
	return out
}

func (s *Store) inRange(i int) bool {
	return i >= 0 && i < len(s.entries)
}
