// FILE: internal/match/match.go

// Package match holds the canonical game-state record for one refereed match:
// the position snapshots, the applied move log with agent commentary, and the
// per-agent hallucination counters. It is a passive record; the orchestrator
// owns all mutation and provides the locking.
package match

import (
	"llmchess/internal/board"
	"llmchess/internal/core"
)

// Snapshot is one position in the match history, together with the move that
// produced it. The initial snapshot and director board edits carry no move.
type Snapshot struct {
	Position   board.Position
	Move       string // SAN as played, empty for initial position and edits
	Side       core.Color
	Commentary string
	Forced     bool // played through the director, not an agent
}

type Match struct {
	ID        string
	snapshots []Snapshot
	halluc    map[core.Color]int
	reject    *core.RejectInfo
}

func New(id string, initial board.Position) *Match {
	return &Match{
		ID:        id,
		snapshots: []Snapshot{{Position: initial}},
		halluc:    map[core.Color]int{core.ColorWhite: 0, core.ColorBlack: 0},
	}
}

// Current returns the canonical position: the single source of truth for
// whose turn it is and what the board looks like.
func (m *Match) Current() board.Position {
	return m.snapshots[len(m.snapshots)-1].Position
}

func (m *Match) Turn() core.Color {
	return m.Current().Turn()
}

// Append records a successfully applied move and the position it produced.
func (m *Match) Append(pos board.Position, move string, side core.Color, commentary string, forced bool) {
	m.snapshots = append(m.snapshots, Snapshot{
		Position:   pos,
		Move:       move,
		Side:       side,
		Commentary: commentary,
		Forced:     forced,
	})
}

// AppendEdit records a director board edit. The new position joins the
// history so later repetition detection sees it.
func (m *Match) AppendEdit(pos board.Position) {
	m.snapshots = append(m.snapshots, Snapshot{Position: pos})
}

// RepetitionHistory returns the repetition keys of every position reached,
// in order, including the current one.
func (m *Match) RepetitionHistory() []string {
	keys := make([]string, len(m.snapshots))
	for i, s := range m.snapshots {
		keys[i] = s.Position.RepetitionKey()
	}
	return keys
}

// Moves lists the applied moves as telemetry entries.
func (m *Match) Moves() []core.MoveEntry {
	entries := []core.MoveEntry{}
	n := 0
	for _, s := range m.snapshots {
		if s.Move == "" && s.Side == 0 {
			continue
		}
		n++
		entries = append(entries, core.MoveEntry{
			Number:     n,
			Side:       s.Side.String(),
			Move:       s.Move,
			Commentary: s.Commentary,
			Forced:     s.Forced,
			FEN:        s.Position.FEN(),
		})
	}
	return entries
}

func (m *Match) MoveCount() int {
	return len(m.Moves())
}

// Hallucinations returns the consecutive invalid-move count for one agent.
func (m *Match) Hallucinations(side core.Color) int {
	return m.halluc[side]
}

// RecordHallucination increments the agent's consecutive counter and keeps
// the rejection visible for telemetry. Returns the new count.
func (m *Match) RecordHallucination(side core.Color, move, reason string) int {
	m.halluc[side]++
	m.reject = &core.RejectInfo{Side: side.String(), Move: move, Reason: reason}
	return m.halluc[side]
}

// ResetHallucinations clears the agent's counter after a successful move.
func (m *Match) ResetHallucinations(side core.Color) {
	m.halluc[side] = 0
}

func (m *Match) LastReject() *core.RejectInfo {
	return m.reject
}

// Reset rewinds the record to a fresh initial position.
func (m *Match) Reset(initial board.Position) {
	m.snapshots = []Snapshot{{Position: initial}}
	m.halluc = map[core.Color]int{core.ColorWhite: 0, core.ColorBlack: 0}
	m.reject = nil
}
