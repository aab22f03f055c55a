package task

import (
	"testing"

	"github.com/matryer/is"
)

func sample(title string) Task {
	return Task{
		Title:       title,
		Description: title + " description",
		Priority:    Medium,
		Status:      Active,
		Deadline:    "2030-01-01 12:00",
		Tags:        []string{"tag"},
	}
}

func TestStore_Add(t *testing.T) {
	is := is.New(t)

	s := NewStore()
	id := s.Add(sample("Title"))

	is.Equal(s.Len(), 1)
	is.Equal(s.HistoryLen(), 1)
	is.Equal(s.Tasks()[0].Title, "Title")
	is.Equal(s.IndexOf(id), 0)
}

func TestStore_Delete(t *testing.T) {
	t.Run("removes and shifts", func(t *testing.T) {
		is := is.New(t)
		s := NewStore()
		s.Add(sample("a"))
		s.Add(sample("b"))
		s.Add(sample("c"))

		is.True(s.Delete(1))
		is.Equal(titles(s.Tasks()), []string{"a", "c"})
		is.Equal(s.HistoryLen(), 4)
	})

	t.Run("out of range is a no-op without snapshot", func(t *testing.T) {
		is := is.New(t)
		s := NewStore()
		s.Add(sample("a"))
		before := s.Tasks()

		is.True(!s.Delete(999))
		is.True(!s.Delete(-1))
		is.Equal(s.Tasks(), before)
		is.Equal(s.HistoryLen(), 1)
	})

	t.Run("by id", func(t *testing.T) {
		is := is.New(t)
		s := NewStore()
		s.Add(sample("a"))
		id := s.Add(sample("b"))
		s.Add(sample("c"))

		is.True(s.DeleteID(id))
		is.Equal(s.IndexOf(id), -1)
		is.True(!s.DeleteID(id))
		is.Equal(titles(s.Tasks()), []string{"a", "c"})
	})
}

func TestStore_Edit(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	s.Add(sample("a"))
	id := s.Add(sample("b"))

	updated := sample("B")
	updated.Status = Done
	is.True(s.Edit(1, updated))
	is.Equal(s.Tasks()[1], updated)
	is.Equal(s.IndexOf(id), 1)

	is.True(!s.Edit(2, updated))
	is.Equal(s.HistoryLen(), 3)

	is.True(s.EditID(id, sample("b again")))
	is.Equal(s.Tasks()[1].Title, "b again")
}

func TestStore_UndoWalksBackInOrder(t *testing.T) {
	is := is.New(t)
	s := NewStore()

	var states [][]Task
	record := func() { states = append(states, s.Tasks()) }

	record()
	s.Add(sample("a"))
	record()
	s.Add(sample("b"))
	record()
	s.Edit(0, sample("A"))
	record()
	s.Delete(1)

	is.Equal(s.HistoryLen(), 4)
	for i := len(states) - 1; i >= 0; i-- {
		is.True(s.Undo())
		is.Equal(s.Tasks(), states[i])
	}
	is.True(!s.Undo())
	is.Equal(s.Len(), 0)
}

func TestStore_Redo(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	a := s.Add(sample("a"))
	s.Add(sample("b"))

	is.True(s.Undo())
	is.Equal(titles(s.Tasks()), []string{"a"})
	is.True(s.Redo())
	is.Equal(titles(s.Tasks()), []string{"a", "b"})
	is.True(!s.Redo())

	// ids survive a round trip through the history
	is.Equal(s.IndexOf(a), 0)

	is.True(s.Undo())
	s.Add(sample("c"))
	is.True(!s.Redo())
	is.Equal(titles(s.Tasks()), []string{"a", "c"})
}

func TestStore_TasksDoNotAlias(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	in := sample("a")
	s.Add(in)
	in.Tags[0] = "changed"

	out := s.Tasks()
	is.Equal(out[0].Tags, []string{"tag"})
	out[0].Tags[0] = "changed"
	out[0].Title = "changed"
	is.Equal(s.Tasks()[0].Title, "a")
	is.Equal(s.Tasks()[0].Tags, []string{"tag"})
}

func TestNewStoreWith(t *testing.T) {
	is := is.New(t)
	s := NewStoreWith([]Task{sample("a"), sample("b")})
	is.Equal(s.Len(), 2)
	is.Equal(s.HistoryLen(), 0)
	is.True(!s.Undo())

	got, ok := s.Get(1)
	is.True(ok)
	is.Equal(got.Title, "b")
	_, ok = s.Get(2)
	is.True(!ok)
}

func titles(ts []Task) []string {
	out := []string{}
	for _, t := range ts {
		out = append(out, t.Title)
	}
	return out
}
