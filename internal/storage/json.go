package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"taskgrid/internal/task"
)

// JSONFile stores tasks as a JSON array of records in a single file.
// Reads and writes hold an exclusive lock on a sidecar "<path>.lock" file and
// writes go through a temp file renamed over the target.
type JSONFile struct {
	path string
	lock *flock.Flock
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path, lock: flock.New(path + ".lock")}
}

func (j *JSONFile) Path() string {
	return j.path
}

// Load reads the file. A missing file loads as an empty collection.
func (j *JSONFile) Load() (Loaded, error) {
	if err := j.acquire(); err != nil {
		return Loaded{}, err
	}
	defer func() { _ = j.lock.Unlock() }()

	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Loaded{Tasks: []task.Task{}}, nil
	}
	if err != nil {
		return Loaded{}, fmt.Errorf("read %s: %w", j.path, err)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return Loaded{}, fmt.Errorf("decode %s: %w", j.path, err)
	}
	loaded, err := decodeAll(records)
	if err != nil {
		return Loaded{}, fmt.Errorf("decode %s: %w", j.path, err)
	}
	return loaded, nil
}

// Save overwrites the file with tasks.
func (j *JSONFile) Save(tasks []task.Task) error {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = toRecord(t)
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	if err := j.acquire(); err != nil {
		return err
	}
	defer func() { _ = j.lock.Unlock() }()

	tmp, err := os.CreateTemp(filepath.Dir(j.path), filepath.Base(j.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("replace %s: %w", j.path, err)
	}
	return nil
}

func (j *JSONFile) Close() error {
	return j.lock.Close()
}

func (j *JSONFile) acquire() error {
	if dir := filepath.Dir(j.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := j.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", j.path, err)
	}
	return nil
}
