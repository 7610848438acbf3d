package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands_UpStatusDownOnSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	out, err := execute(t, "up", "--driver", "sqlite", "--dsn", path)
	require.NoError(t, err)
	assert.Contains(t, out, "up finished for sqlite")

	_, err = execute(t, "status", "--driver", "sqlite", "--dsn", path)
	require.NoError(t, err)

	_, err = execute(t, "down", "--driver", "sqlite", "--dsn", path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCommands_CreateWritesSQLFile(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "create", "add_notes", "--driver", "sqlite", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "add_notes")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_add_notes.sql"))
}

func TestCommands_RejectsUnknownDriver(t *testing.T) {
	_, err := execute(t, "up", "--driver", "mysql")
	assert.Error(t, err)
}
