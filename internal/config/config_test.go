package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"taskgrid/internal/storage"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadOrCreate(path)
	is.NoErr(err)
	is.Equal(cfg, Default())

	_, err = os.Stat(path)
	is.NoErr(err)

	again, err := LoadOrCreate(path)
	is.NoErr(err)
	is.Equal(again, cfg)
}

func TestLoadOrCreate_Overrides(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
data_dir = "/var/tasks"
backend = "sqlite"
default_sort = "desc"

[keys]
undo = "z"
`
	is.NoErr(os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadOrCreate(path)
	is.NoErr(err)
	is.Equal(cfg.DataDir, "/var/tasks")
	is.Equal(cfg.Backend, "sqlite")
	is.Equal(cfg.DefaultSort, "desc")
	is.Equal(cfg.Keys.Undo, "z")
	is.Equal(cfg.Keys.Redo, Default().Keys.Redo)
	is.Equal(cfg.LogPath(), filepath.Join("/var/tasks", DefaultLogFileName))
}

func TestLoadOrCreate_UnknownBackend(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	is.NoErr(os.WriteFile(path, []byte(`backend = "postgres"`), 0o644))

	_, err := LoadOrCreate(path)
	is.True(errors.Is(err, ErrUnknownBackend))
	is.True(errors.Is(err, storage.ErrUnknownBackend))
}

func TestResolveConfigPath_Env(t *testing.T) {
	is := is.New(t)
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	is.Equal(ResolveConfigPath(), "/tmp/custom.toml")
}
