// FILE: internal/storage/schema.go
package storage

import "time"

// MatchRecord represents a row in the matches table
type MatchRecord struct {
	MatchID      string    `db:"match_id"`
	InitialFEN   string    `db:"initial_fen"`
	WhiteAgentID string    `db:"white_agent_id"`
	WhiteName    string    `db:"white_name"`
	BlackAgentID string    `db:"black_agent_id"`
	BlackName    string    `db:"black_name"`
	StartTimeUTC time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID       int64     `db:"move_id"`
	MatchID      string    `db:"match_id"`
	MoveNumber   int       `db:"move_number"`
	MoveSAN      string    `db:"move_san"`
	FENAfterMove string    `db:"fen_after_move"`
	Side         string    `db:"side"` // "w" or "b"
	Commentary   string    `db:"commentary"`
	Forced       bool      `db:"forced"`
	MoveTimeUTC  time.Time `db:"move_time_utc"`
}

// HallucinationRecord is the audit trail of rejected agent proposals.
type HallucinationRecord struct {
	EventID      int64     `db:"event_id"`
	MatchID      string    `db:"match_id"`
	Side         string    `db:"side"`
	Attempt      int       `db:"attempt"` // consecutive count at the time
	Reason       string    `db:"reason"`
	RawText      string    `db:"raw_text"`
	EventTimeUTC time.Time `db:"event_time_utc"`
}

// ResultRecord captures how a match ended.
type ResultRecord struct {
	MatchID    string    `db:"match_id"`
	Outcome    string    `db:"outcome"`
	Reason     string    `db:"reason"`
	EndTimeUTC time.Time `db:"end_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS matches (
	match_id TEXT PRIMARY KEY,
	initial_fen TEXT NOT NULL,
	white_agent_id TEXT NOT NULL,
	white_name TEXT NOT NULL,
	black_agent_id TEXT NOT NULL,
	black_name TEXT NOT NULL,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	match_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	move_san TEXT NOT NULL,
	fen_after_move TEXT NOT NULL,
	side TEXT NOT NULL CHECK(side IN ('w', 'b')),
	commentary TEXT NOT NULL DEFAULT '',
	forced INTEGER NOT NULL DEFAULT 0,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (match_id) REFERENCES matches(match_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS hallucinations (
	event_id INTEGER PRIMARY KEY AUTOINCREMENT,
	match_id TEXT NOT NULL,
	side TEXT NOT NULL CHECK(side IN ('w', 'b')),
	attempt INTEGER NOT NULL,
	reason TEXT NOT NULL,
	raw_text TEXT NOT NULL,
	event_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (match_id) REFERENCES matches(match_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS results (
	match_id TEXT PRIMARY KEY,
	outcome TEXT NOT NULL,
	reason TEXT NOT NULL,
	end_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (match_id) REFERENCES matches(match_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_moves_match_id ON moves(match_id);
CREATE INDEX IF NOT EXISTS idx_hallucinations_match_id ON hallucinations(match_id);
`
