package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RunsMigrations(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "golf.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"scorecards", "scorecard_holes", "course_snapshots", "course_snapshot_pars"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golf.db")

	first, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO scorecards (id, course_id, holes_completed, start_time, created_at, updated_at)
		VALUES ('1', 17772, 18, '2021-05-01 09:00:00', '2021-05-01 09:00:00', '2021-05-01 09:00:00')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM scorecards").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpen_ForeignKeysOnEveryConnection(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "golf.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	var enabled int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)

	_, err = db.Exec("INSERT INTO scorecard_holes (scorecard_id, number) VALUES ('missing', 1)")
	assert.Error(t, err)
}
