package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taskgrid/internal/task"
)

// SQLite keeps the collection in a tasks table ordered by position.
// Records use the same field names and string encodings as the JSON file,
// with tags stored as a JSON array.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	position INTEGER PRIMARY KEY,
	title TEXT,
	description TEXT,
	priority TEXT,
	status TEXT,
	deadline TEXT,
	tags TEXT
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads every row in position order. A NULL column counts as a missing
// field and fails the whole load.
func (s *SQLite) Load() (Loaded, error) {
	rows, err := s.db.Query(`SELECT title, description, priority, status, deadline, tags FROM tasks ORDER BY position;`)
	if err != nil {
		return Loaded{}, err
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var title, desc, priority, status, deadline, tags sql.NullString
		if err := rows.Scan(&title, &desc, &priority, &status, &deadline, &tags); err != nil {
			return Loaded{}, err
		}
		r := record{
			Title:       nullable(title),
			Description: nullable(desc),
			Priority:    nullable(priority),
			Status:      nullable(status),
			Deadline:    nullable(deadline),
		}
		if tags.Valid {
			var list []string
			if err := json.Unmarshal([]byte(tags.String), &list); err != nil {
				return Loaded{}, fmt.Errorf("record %d: decode tags: %w", len(records), err)
			}
			if list == nil {
				list = []string{}
			}
			r.Tags = &list
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return Loaded{}, err
	}
	return decodeAll(records)
}

// Save replaces every row in one transaction.
func (s *SQLite) Save(tasks []task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (position, title, description, priority, status, deadline, tags) VALUES (?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range tasks {
		r := toRecord(t)
		tags, err := json.Marshal(*r.Tags)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(i, *r.Title, *r.Description, *r.Priority, *r.Status, *r.Deadline, string(tags)); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
