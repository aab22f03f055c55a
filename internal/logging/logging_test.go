package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNew_Level(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	is.NoErr(err)

	logger.Info("hidden")
	logger.Warn("shown", "user", "alice")
	out := buf.String()
	is.True(!strings.Contains(out, "hidden"))
	is.True(strings.Contains(out, "shown"))
	is.True(strings.Contains(out, "user=alice"))
}

func TestNew_BadLevel(t *testing.T) {
	is := is.New(t)
	_, err := New(&bytes.Buffer{}, "loud")
	is.True(err != nil)
}

func TestNewFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "logs", "taskgrid.log")
	logger, f, err := NewFile(path, "")
	is.NoErr(err)
	logger.Info("saved", "tasks", 3)
	is.NoErr(f.Close())

	data, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(strings.Contains(string(data), "saved"))
}
