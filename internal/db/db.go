// Package db persists finished tracking sessions and their rep events
// in sqlite.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if necessary) the sqlite database at path.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id        TEXT PRIMARY KEY,
			started_at        DOUBLE,
			ended_at          DOUBLE,
			tick_count        BIGINT,
			rep_count         BIGINT,
			params            TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS rep_events (
			session_id        TEXT,
			rep_number        BIGINT,
			tick              BIGINT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(session_id) REFERENCES sessions(session_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// SessionRecord is one finished tracking session.
type SessionRecord struct {
	SessionID string  `json:"session_id"`
	StartedAt float64 `json:"started_at"`
	EndedAt   float64 `json:"ended_at"`
	TickCount int     `json:"tick_count"`
	RepCount  int     `json:"rep_count"`
	Params    string  `json:"params"`
}

// RecordSession inserts a finished session and its rep events in one
// transaction. repTicks holds the tick index of each counted rep, in
// order. Returns the generated session id.
func (db *DB) RecordSession(started, ended time.Time, tickCount int, repTicks []int, params string) (string, error) {
	sessionID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin session insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, started_at, ended_at, tick_count, rep_count, params)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID,
		float64(started.UnixNano())/1e9,
		float64(ended.UnixNano())/1e9,
		tickCount,
		len(repTicks),
		params,
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	for i, tick := range repTicks {
		_, err = tx.Exec(
			`INSERT INTO rep_events (session_id, rep_number, tick) VALUES (?, ?, ?)`,
			sessionID, i+1, tick,
		)
		if err != nil {
			return "", fmt.Errorf("insert rep event %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit session insert: %w", err)
	}
	return sessionID, nil
}

// ListSessions returns recorded sessions, most recent first.
func (db *DB) ListSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT session_id, started_at, ended_at, tick_count, rep_count, params
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var r SessionRecord
		if err := rows.Scan(&r.SessionID, &r.StartedAt, &r.EndedAt, &r.TickCount, &r.RepCount, &r.Params); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SessionReps returns the tick index of each rep in a session, in rep
// order.
func (db *DB) SessionReps(sessionID string) ([]int, error) {
	rows, err := db.Query(
		`SELECT tick FROM rep_events WHERE session_id = ? ORDER BY rep_number`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ticks []int
	for rows.Next() {
		var tick int
		if err := rows.Scan(&tick); err != nil {
			return nil, err
		}
		ticks = append(ticks, tick)
	}
	return ticks, rows.Err()
}
