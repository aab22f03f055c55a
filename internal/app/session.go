// Package app connects a task store to its persistence gateway and holds the
// input helpers shared by the TUI and the CLI.
package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"taskgrid/internal/storage"
	"taskgrid/internal/task"
)

// Session is one user's store plus the gateway it is flushed to. Every
// mutation that changes the collection saves it in full.
type Session struct {
	Store  *task.Store
	gw     storage.Gateway
	logger *log.Logger
}

// Open loads the user's tasks through gw. Unrecognised priority or status
// values are logged as warnings and kept at their defaults.
func Open(gw storage.Gateway, logger *log.Logger) (*Session, error) {
	loaded, err := gw.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	for _, w := range loaded.Warnings {
		logger.Warn("unrecognised value replaced by default", "record", w.Record, "field", w.Field, "value", w.Value)
	}
	logger.Debug("loaded tasks", "count", len(loaded.Tasks))
	return &Session{
		Store:  task.NewStoreWith(loaded.Tasks),
		gw:     gw,
		logger: logger,
	}, nil
}

func (s *Session) Add(t task.Task) (task.ID, error) {
	id := s.Store.Add(t)
	s.logger.Info("added task", "title", t.Title)
	return id, s.save()
}

func (s *Session) Delete(i int) (bool, error) {
	return s.apply("deleted task", s.Store.Delete(i), "index", i)
}

func (s *Session) DeleteID(id task.ID) (bool, error) {
	return s.apply("deleted task", s.Store.DeleteID(id), "id", id)
}

func (s *Session) Edit(i int, t task.Task) (bool, error) {
	return s.apply("edited task", s.Store.Edit(i, t), "index", i)
}

func (s *Session) EditID(id task.ID, t task.Task) (bool, error) {
	return s.apply("edited task", s.Store.EditID(id, t), "id", id)
}

func (s *Session) Undo() (bool, error) {
	return s.apply("undo", s.Store.Undo())
}

func (s *Session) Redo() (bool, error) {
	return s.apply("redo", s.Store.Redo())
}

func (s *Session) Close() error {
	return s.gw.Close()
}

func (s *Session) apply(msg string, changed bool, keyvals ...any) (bool, error) {
	if !changed {
		s.logger.Debug(msg+": nothing to do", keyvals...)
		return false, nil
	}
	s.logger.Info(msg, keyvals...)
	return true, s.save()
}

func (s *Session) save() error {
	if err := s.gw.Save(s.Store.Tasks()); err != nil {
		s.logger.Error("save failed", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
