package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"taskgrid/internal/storage"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultLogFileName    = "taskgrid.log"
	EnvConfigPath         = "TASKGRID_CONFIG"
)

// ErrUnknownBackend is the storage sentinel, so errors.Is matches whether the
// backend was rejected here or by storage.Open.
var ErrUnknownBackend = storage.ErrUnknownBackend

type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Edit         string `toml:"edit"`
	Delete       string `toml:"delete"`
	Confirm      string `toml:"confirm"`
	Cancel       string `toml:"cancel"`
	Undo         string `toml:"undo"`
	Redo         string `toml:"redo"`
	FilterTag    string `toml:"filter_tag"`
	FilterStatus string `toml:"filter_status"`
	Search       string `toml:"search"`
	Sort         string `toml:"sort"`
	Calendar     string `toml:"calendar"`
	PrevMonth    string `toml:"prev_month"`
	NextMonth    string `toml:"next_month"`
}

type Config struct {
	DataDir     string `toml:"data_dir"`
	Backend     string `toml:"backend"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	DefaultSort string `toml:"default_sort"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath returns $TASKGRID_CONFIG when set, otherwise
// <user config dir>/taskgrid/config.toml, falling back to ./config.toml.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "taskgrid", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.Backend == "" {
		cfg.Backend = "json"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case string(storage.BackendJSON), string(storage.BackendSQLite):
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.Backend)
	}
	switch strings.ToLower(c.DefaultSort) {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("default_sort must be asc, desc or empty, got %q", c.DefaultSort)
	}
	return nil
}

// LogPath resolves LogFile against DataDir.
func (c Config) LogPath() string {
	name := c.LogFile
	if name == "" {
		name = DefaultLogFileName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		DataDir:     ".",
		Backend:     "json",
		LogLevel:    "info",
		LogFile:     DefaultLogFileName,
		DefaultSort: "",
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Edit:         "e",
			Delete:       "d",
			Confirm:      "enter",
			Cancel:       "esc",
			Undo:         "u",
			Redo:         "ctrl+r",
			FilterTag:    "t",
			FilterStatus: "s",
			Search:       "/",
			Sort:         "o",
			Calendar:     "c",
			PrevMonth:    "left",
			NextMonth:    "right",
		},
	}
}
