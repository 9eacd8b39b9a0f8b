package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndListSessions(t *testing.T) {
	db := testDB(t)

	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	ended := started.Add(2 * time.Minute)
	repTicks := []int{31, 71, 111}

	id, err := db.RecordSession(started, ended, 120, repTicks, `{"lookback":4}`)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sessions, err := db.ListSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, id, s.SessionID)
	assert.Equal(t, 120, s.TickCount)
	assert.Equal(t, 3, s.RepCount)
	assert.Equal(t, `{"lookback":4}`, s.Params)
	assert.InDelta(t, float64(started.Unix()), s.StartedAt, 1)

	ticks, err := db.SessionReps(id)
	require.NoError(t, err)
	assert.Equal(t, repTicks, ticks)
}

func TestListSessionsOrder(t *testing.T) {
	db := testDB(t)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	older, err := db.RecordSession(base, base.Add(time.Minute), 10, nil, "{}")
	require.NoError(t, err)
	newer, err := db.RecordSession(base.Add(time.Hour), base.Add(time.Hour+time.Minute), 20, []int{5}, "{}")
	require.NoError(t, err)

	sessions, err := db.ListSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer, sessions[0].SessionID, "most recent first")
	assert.Equal(t, older, sessions[1].SessionID)

	limited, err := db.ListSessions(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSessionRepsEmpty(t *testing.T) {
	db := testDB(t)

	id, err := db.RecordSession(time.Now(), time.Now(), 50, nil, "{}")
	require.NoError(t, err)

	ticks, err := db.SessionReps(id)
	require.NoError(t, err)
	assert.Empty(t, ticks)
}
