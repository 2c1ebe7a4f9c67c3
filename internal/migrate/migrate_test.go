package migrate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"userapi/internal/db"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite://"+filepath.Join(t.TempDir(), "migrate.db"), db.Options{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func TestMigrator_UpBuiltins(t *testing.T) {
	gdb := openTestDB(t)
	m := New(gdb, zerolog.Nop())

	ran, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_create_users"}, ran)
	assert.True(t, gdb.Migrator().HasTable("users"))
	assert.True(t, gdb.Migrator().HasColumn(&usersV1{}, "name"))
	assert.True(t, gdb.Migrator().HasColumn(&usersV1{}, "email"))

	ran, err = m.Up(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ran, "second run applies nothing")
}

func TestMigrator_Status(t *testing.T) {
	gdb := openTestDB(t)
	noop := func(*gorm.DB) error { return nil }
	first := New(gdb, zerolog.Nop(), Migration{ID: "0001_a", Up: noop})

	_, err := first.Up(context.Background())
	require.NoError(t, err)

	both := New(gdb, zerolog.Nop(), Migration{ID: "0001_a", Up: noop}, Migration{ID: "0002_b", Up: noop})
	status, err := both.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.Equal(t, "0001_a", status[0].ID)
	assert.True(t, status[0].Applied())
	assert.Equal(t, "0002_b", status[1].ID)
	assert.False(t, status[1].Applied())

	ran, err := both.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_b"}, ran)
}

func TestMigrator_FailureStopsRun(t *testing.T) {
	gdb := openTestDB(t)
	var calls []string
	step := func(id string, err error) Migration {
		return Migration{ID: id, Up: func(*gorm.DB) error {
			calls = append(calls, id)
			return err
		}}
	}
	boom := errors.New("boom")
	m := New(gdb, zerolog.Nop(), step("0001_ok", nil), step("0002_bad", boom), step("0003_never", nil))

	ran, err := m.Up(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "0002_bad")
	assert.Equal(t, []string{"0001_ok"}, ran)
	assert.Equal(t, []string{"0001_ok", "0002_bad"}, calls)

	status, err := m.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status[0].Applied())
	assert.False(t, status[1].Applied(), "failed migration is not recorded")
	assert.False(t, status[2].Applied())
}

func TestMigrator_RejectsBadHistory(t *testing.T) {
	gdb := openTestDB(t)
	noop := func(*gorm.DB) error { return nil }

	tests := []struct {
		name       string
		migrations []Migration
		wantErr    string
	}{
		{
			name:       "duplicate",
			migrations: []Migration{{ID: "0001_a", Up: noop}, {ID: "0001_a", Up: noop}},
			wantErr:    "duplicate",
		},
		{
			name:       "out of order",
			migrations: []Migration{{ID: "0002_b", Up: noop}, {ID: "0001_a", Up: noop}},
			wantErr:    "out of order",
		},
		{
			name:       "missing func",
			migrations: []Migration{{ID: "0001_a"}},
			wantErr:    "incomplete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(gdb, zerolog.Nop(), tt.migrations...).Up(context.Background())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
