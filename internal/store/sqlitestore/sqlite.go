// Package sqlitestore persists fetch stats across sessions in SQLite.
package sqlitestore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Makepad-fr/listbench/internal/model"
)

// Store is safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the database at path. ":memory:" is supported.
func Open(path string) (*Store, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS fetch_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		size_mb REAL NOT NULL,
		number_of_rows INTEGER NOT NULL,
		inflight_ms INTEGER NOT NULL,
		json_parse_ms INTEGER NOT NULL,
		transform_ms INTEGER NOT NULL,
		completed_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_fetch_stats_size ON fetch_stats(size_mb);
	`)
	return err
}

// RecordStats appends one record. It satisfies history.Sink.
func (s *Store) RecordStats(st model.FetchStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := st.CompletedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO fetch_stats (size_mb, number_of_rows, inflight_ms, json_parse_ms, transform_ms, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		st.SizeMB, st.NumberOfRows, st.InflightTime, st.JSONParseTime, st.TransformTime, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert stats: %w", err)
	}
	return nil
}

// All returns every stored record in insertion order.
func (s *Store) All() ([]model.FetchStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT size_mb, number_of_rows, inflight_ms, json_parse_ms, transform_ms, completed_at
		FROM fetch_stats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	out := []model.FetchStats{}
	for rows.Next() {
		var st model.FetchStats
		var at int64
		if err := rows.Scan(&st.SizeMB, &st.NumberOfRows, &st.InflightTime, &st.JSONParseTime, &st.TransformTime, &at); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		st.CompletedAt = time.UnixMilli(at).UTC()
		out = append(out, st)
	}
	return out, rows.Err()
}

// Clear removes every record.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM fetch_stats`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
