package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) cli {
	return cli{t: t, dir: t.TempDir()}
}

func (c cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &stdout, &stderr)
	base := []string{
		"--config", filepath.Join(c.dir, "config.toml"),
		"--data-dir", c.dir,
		"--user", "alice",
		"--log-level", "error",
	}
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI_AddListDelete(t *testing.T) {
	is := is.New(t)
	c := newCLI(t)

	out, _, err := c.run("add", "--title", "Buy milk", "--deadline", "2030-02-15 10:00", "--tags", "home,shop", "--priority", "High")
	is.NoErr(err)
	is.Equal(out, "added #0 Buy milk\n")
	_, _, err = c.run("add", "--title", "Homework", "--desc", "Math", "--deadline", "2030-01-02 12:00", "--status", "Done")
	is.NoErr(err)

	_, err = os.Stat(filepath.Join(c.dir, "alice_tasks.json"))
	is.NoErr(err)

	out, _, err = c.run("list")
	is.NoErr(err)
	is.True(strings.Contains(out, "Buy milk"))
	is.True(strings.Contains(out, "Homework"))

	out, _, err = c.run("list", "--tag", "home")
	is.NoErr(err)
	is.True(strings.Contains(out, "Buy milk"))
	is.True(!strings.Contains(out, "Homework"))

	out, _, err = c.run("list", "--status", "Done", "--search", "Mat")
	is.NoErr(err)
	is.True(strings.Contains(out, "Homework"))
	is.True(!strings.Contains(out, "Buy milk"))

	out, _, err = c.run("list", "--sort", "asc")
	is.NoErr(err)
	is.True(strings.Index(out, "Homework") < strings.Index(out, "Buy milk"))

	out, _, err = c.run("delete", "9")
	is.NoErr(err)
	is.Equal(out, "no task at index 9\n")

	out, _, err = c.run("delete", "0")
	is.NoErr(err)
	is.Equal(out, "deleted #0\n")

	out, _, err = c.run("list")
	is.NoErr(err)
	is.True(!strings.Contains(out, "Buy milk"))
}

func TestCLI_EditKeepsUnsetFields(t *testing.T) {
	is := is.New(t)
	c := newCLI(t)
	_, _, err := c.run("add", "--title", "Draft", "--desc", "keep me", "--tags", "a")
	is.NoErr(err)

	out, stderr, err := c.run("edit", "0", "--title", "Final", "--priority", "Whenever")
	is.NoErr(err)
	is.Equal(out, "edited #0 Final\n")
	is.True(strings.Contains(stderr, "priority"))

	out, _, err = c.run("list", "--search", "keep me")
	is.NoErr(err)
	is.True(strings.Contains(out, "Final"))
	is.True(strings.Contains(out, "High"))
}

func TestCLI_StatsAndCalendar(t *testing.T) {
	is := is.New(t)
	c := newCLI(t)
	for _, args := range [][]string{
		{"add", "--title", "a", "--deadline", "2030-02-15 10:00", "--priority", "Low"},
		{"add", "--title", "b", "--deadline", "2030-02-20 10:00", "--priority", "Low"},
		{"add", "--title", "c", "--deadline", "not-a-date"},
	} {
		_, _, err := c.run(args...)
		is.NoErr(err)
	}

	out, _, err := c.run("stats")
	is.NoErr(err)
	is.True(strings.Contains(out, "Low      2"))
	is.True(strings.Contains(out, "Medium   1"))
	is.True(strings.Contains(out, "not-a-date       1"))

	out, _, err = c.run("calendar")
	is.NoErr(err)
	is.True(strings.Contains(out, "February 2030"))
	is.True(strings.Contains(out, "months with tasks: 2030-02"))

	_, _, err = c.run("calendar", "Feb")
	is.True(err != nil)
}

func TestCLI_RequiresUser(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Setenv(envUser, "")
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &stdout, &stderr)
	cmd.SetArgs([]string{"list", "--config", filepath.Join(dir, "config.toml"), "--data-dir", dir})
	err := cmd.Execute()
	is.True(err != nil)
}

func TestCLI_BackendSQLite(t *testing.T) {
	is := is.New(t)
	c := newCLI(t)
	_, _, err := c.run("add", "--title", "in sqlite", "--backend", "sqlite")
	is.NoErr(err)
	_, err = os.Stat(filepath.Join(c.dir, "alice_tasks.db"))
	is.NoErr(err)

	out, _, err := c.run("list", "--backend", "sqlite")
	is.NoErr(err)
	is.True(strings.Contains(out, "in sqlite"))

	_, _, err = c.run("list", "--backend", "postgres")
	is.True(err != nil)
}
