package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"taskgrid/internal/logging"
	"taskgrid/internal/storage"
	"taskgrid/internal/task"
)

type memGateway struct {
	loaded storage.Loaded
	saved  [][]task.Task
	err    error
}

func (m *memGateway) Load() (storage.Loaded, error) { return m.loaded, nil }

func (m *memGateway) Save(ts []task.Task) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, ts)
	return nil
}

func (m *memGateway) Close() error { return nil }

func TestSession_SavesAfterEveryChange(t *testing.T) {
	is := is.New(t)
	gw := &memGateway{}
	s, err := Open(gw, logging.Discard())
	is.NoErr(err)

	_, err = s.Add(task.Task{Title: "a", Tags: []string{}})
	is.NoErr(err)
	id, err := s.Add(task.Task{Title: "b", Tags: []string{}})
	is.NoErr(err)
	is.Equal(len(gw.saved), 2)

	changed, err := s.Delete(7)
	is.NoErr(err)
	is.True(!changed)
	is.Equal(len(gw.saved), 2)

	changed, err = s.EditID(id, task.Task{Title: "B", Tags: []string{}})
	is.NoErr(err)
	is.True(changed)
	is.Equal(gw.saved[2][1].Title, "B")

	changed, err = s.Undo()
	is.NoErr(err)
	is.True(changed)
	is.Equal(gw.saved[3][1].Title, "b")

	changed, err = s.Redo()
	is.NoErr(err)
	is.True(changed)
	is.Equal(len(gw.saved), 5)

	changed, err = s.DeleteID(id)
	is.NoErr(err)
	is.True(changed)
	is.Equal(len(gw.saved[5]), 1)
}

func TestSession_SaveError(t *testing.T) {
	is := is.New(t)
	boom := errors.New("disk full")
	gw := &memGateway{err: boom}
	s, err := Open(gw, logging.Discard())
	is.NoErr(err)

	_, err = s.Add(task.Task{Title: "a"})
	is.True(errors.Is(err, boom))
	// the store keeps the change; the next successful save flushes it
	is.Equal(s.Store.Len(), 1)
}

func TestSession_JSONFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	gw, err := storage.Open(storage.BackendJSON, dir, "alice")
	is.NoErr(err)

	s, err := Open(gw, logging.Discard())
	is.NoErr(err)
	_, err = s.Add(task.Task{Title: "persisted", Priority: task.Low, Tags: []string{"x"}})
	is.NoErr(err)
	is.NoErr(s.Close())

	again, err := Open(storage.NewJSONFile(filepath.Join(dir, "alice_tasks.json")), logging.Discard())
	is.NoErr(err)
	defer again.Close()
	is.Equal(again.Store.Tasks(), []task.Task{{Title: "persisted", Priority: task.Low, Tags: []string{"x"}}})
	is.Equal(again.Store.HistoryLen(), 0)
}
