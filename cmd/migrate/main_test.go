package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type migratorFake struct {
	err   error
	calls []string
	steps int
}

func (m *migratorFake) Up() error {
	m.calls = append(m.calls, "up")
	return m.err
}

func (m *migratorFake) Down() error {
	m.calls = append(m.calls, "down")
	return m.err
}

func (m *migratorFake) Steps(n int) error {
	m.calls = append(m.calls, "steps")
	m.steps = n
	return m.err
}

func TestApply(t *testing.T) {
	m := &migratorFake{}
	require.NoError(t, apply(m, "up", 0))
	require.NoError(t, apply(m, "down", 0))
	require.NoError(t, apply(m, "up", -1))
	assert.Equal(t, []string{"up", "down", "steps"}, m.calls)
	assert.Equal(t, -1, m.steps)

	assert.EqualError(t, apply(m, "sideways", 0), "unknown command: sideways")
}

func TestApply_NoChange(t *testing.T) {
	assert.NoError(t, apply(&migratorFake{err: migrate.ErrNoChange}, "up", 0))

	boom := errors.New("dirty database")
	assert.ErrorIs(t, apply(&migratorFake{err: boom}, "up", 0), boom)
}

func TestFindMigrationsDir(t *testing.T) {
	root := t.TempDir()
	migrationsDir := filepath.Join(root, "migrations")
	nested := filepath.Join(root, "cmd", "migrate")
	require.NoError(t, os.MkdirAll(migrationsDir, 0o755))
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := findMigrationsDir(nested)
	require.NoError(t, err)
	assert.Equal(t, migrationsDir, found)

	found, err = findMigrationsDir(root)
	require.NoError(t, err)
	assert.Equal(t, migrationsDir, found)
}

func TestFindMigrationsDir_NotFound(t *testing.T) {
	_, err := findMigrationsDir(t.TempDir())
	assert.Error(t, err)
}
