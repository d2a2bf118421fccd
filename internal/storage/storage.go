// FILE: internal/storage/storage.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Store handles SQLite database operations with async writes. Persistence is
// best-effort: a degraded store drops writes instead of stalling a match.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan func(*sql.Tx) error
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewStore creates a new storage instance with async writer
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode in development for better concurrency
	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan func(*sql.Tx) error, 1000),
		ctx:       ctx,
		cancel:    cancel,
	}

	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

// writerLoop processes async write operations
func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// Drain remaining writes with timeout
			deadline := time.After(2 * time.Second)
			for {
				select {
				case fn := <-s.writeChan:
					if s.healthStatus.Load() {
						s.executeWrite(fn)
					}
				case <-deadline:
					return
				default:
					return
				}
			}

		case fn := <-s.writeChan:
			if !s.healthStatus.Load() {
				continue
			}
			s.executeWrite(fn)
		}
	}
}

// executeWrite runs a transactional write operation
func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		logrus.WithError(err).Warn("storage degraded: failed to begin transaction")
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		logrus.WithError(err).Warn("storage degraded: write operation failed")
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Warn("storage degraded: failed to commit")
		s.healthStatus.Store(false)
	}
}

// enqueue submits an async write, dropping it when the queue is full or the
// store is degraded.
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() {
		return
	}
	select {
	case s.writeChan <- fn:
	default:
		logrus.WithField("record", what).Warn("storage write queue full, dropping record")
	}
}

// RecordNewMatch asynchronously records a new match
func (s *Store) RecordNewMatch(record MatchRecord) {
	s.enqueue("match", func(tx *sql.Tx) error {
		query := `INSERT INTO matches (
			match_id, initial_fen,
			white_agent_id, white_name,
			black_agent_id, black_name,
			start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.MatchID, record.InitialFEN,
			record.WhiteAgentID, record.WhiteName,
			record.BlackAgentID, record.BlackName,
			record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records an applied move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			match_id, move_number, move_san, fen_after_move, side, commentary, forced, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.MatchID, record.MoveNumber, record.MoveSAN,
			record.FENAfterMove, record.Side, record.Commentary, record.Forced,
			record.MoveTimeUTC,
		)
		return err
	})
}

// RecordHallucination asynchronously records a rejected proposal
func (s *Store) RecordHallucination(record HallucinationRecord) {
	s.enqueue("hallucination", func(tx *sql.Tx) error {
		query := `INSERT INTO hallucinations (
			match_id, side, attempt, reason, raw_text, event_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.MatchID, record.Side, record.Attempt,
			record.Reason, record.RawText, record.EventTimeUTC,
		)
		return err
	})
}

// RecordResult asynchronously records how the match ended
func (s *Store) RecordResult(record ResultRecord) {
	s.enqueue("result", func(tx *sql.Tx) error {
		query := `INSERT OR REPLACE INTO results (
			match_id, outcome, reason, end_time_utc
		) VALUES (?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.MatchID, record.Outcome, record.Reason, record.EndTimeUTC,
		)
		return err
	})
}

// QueryMoves retrieves the persisted move log of a match.
func (s *Store) QueryMoves(matchID string) ([]MoveRecord, error) {
	query := `SELECT move_id, match_id, move_number, move_san, fen_after_move,
		side, commentary, forced, move_time_utc
	FROM moves WHERE match_id = ? ORDER BY move_number ASC`

	rows, err := s.db.Query(query, matchID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(
			&m.MoveID, &m.MatchID, &m.MoveNumber, &m.MoveSAN, &m.FENAfterMove,
			&m.Side, &m.Commentary, &m.Forced, &m.MoveTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return moves, nil
}

// QueryHallucinations retrieves the rejected-proposal audit trail of a match.
func (s *Store) QueryHallucinations(matchID string) ([]HallucinationRecord, error) {
	query := `SELECT event_id, match_id, side, attempt, reason, raw_text, event_time_utc
	FROM hallucinations WHERE match_id = ? ORDER BY event_id ASC`

	rows, err := s.db.Query(query, matchID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var events []HallucinationRecord
	for rows.Next() {
		var h HallucinationRecord
		if err := rows.Scan(
			&h.EventID, &h.MatchID, &h.Side, &h.Attempt,
			&h.Reason, &h.RawText, &h.EventTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		events = append(events, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return events, nil
}

// QueryMatches retrieves match records, newest first.
func (s *Store) QueryMatches(matchID string) ([]MatchRecord, error) {
	query := `SELECT match_id, initial_fen,
		white_agent_id, white_name, black_agent_id, black_name, start_time_utc
	FROM matches WHERE 1=1`

	var args []interface{}
	if matchID != "" && matchID != "*" {
		query += " AND match_id = ?"
		args = append(args, matchID)
	}
	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(
			&m.MatchID, &m.InitialFEN,
			&m.WhiteAgentID, &m.WhiteName, &m.BlackAgentID, &m.BlackName,
			&m.StartTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return matches, nil
}

// IsHealthy returns the current health status
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}

// Close gracefully closes the database connection
func (s *Store) Close() error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Writer finished cleanly
	case <-time.After(2 * time.Second):
		logrus.Warn("storage writer shutdown timeout, some writes may be lost")
	}

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
