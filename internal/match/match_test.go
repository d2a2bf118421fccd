// FILE: internal/match/match_test.go
package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"llmchess/internal/board"
	"llmchess/internal/core"
)

func TestMoves_NumberingAndEdits(t *testing.T) {
	m := New("test", board.Initial())

	p1, _ := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	p2, _ := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")

	m.Append(p1, "e4", core.ColorWhite, "opening the center", false)
	m.AppendEdit(p1.WithEnPassant("")) // director board edit carries no move
	m.Append(p2, "e5", core.ColorBlack, "", true)

	want := []core.MoveEntry{
		{Number: 1, Side: "w", Move: "e4", Commentary: "opening the center", FEN: p1.FEN()},
		{Number: 2, Side: "b", Move: "e5", Forced: true, FEN: p2.FEN()},
	}
	if diff := cmp.Diff(want, m.Moves()); diff != "" {
		t.Errorf("Moves() mismatch (-want +got):\n%s", diff)
	}
	if m.MoveCount() != 2 {
		t.Errorf("MoveCount() = %d, want 2", m.MoveCount())
	}
	if m.Current().FEN() != p2.FEN() {
		t.Errorf("Current() = %q, want the last appended position", m.Current().FEN())
	}
}

func TestRepetitionHistoryIncludesEdits(t *testing.T) {
	m := New("test", board.Initial())
	edited, _ := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	m.AppendEdit(edited)

	keys := m.RepetitionHistory()
	if len(keys) != 2 {
		t.Fatalf("RepetitionHistory() has %d keys, want 2", len(keys))
	}
	if keys[1] != edited.RepetitionKey() {
		t.Errorf("last key = %q, want the edit's key", keys[1])
	}
}

func TestHallucinationCounters(t *testing.T) {
	m := New("test", board.Initial())

	if got := m.RecordHallucination(core.ColorWhite, "Ke4", "no piece"); got != 1 {
		t.Errorf("first RecordHallucination = %d, want 1", got)
	}
	if got := m.RecordHallucination(core.ColorWhite, "Qh5", "no piece"); got != 2 {
		t.Errorf("second RecordHallucination = %d, want 2", got)
	}

	// Counters are per side.
	if m.Hallucinations(core.ColorBlack) != 0 {
		t.Error("black counter moved with white's hallucinations")
	}

	reject := m.LastReject()
	if reject == nil || reject.Move != "Qh5" || reject.Side != "w" {
		t.Errorf("LastReject() = %+v, want the most recent rejection", reject)
	}

	m.ResetHallucinations(core.ColorWhite)
	if m.Hallucinations(core.ColorWhite) != 0 {
		t.Error("ResetHallucinations did not clear the counter")
	}
}

func TestReset(t *testing.T) {
	m := New("test", board.Initial())
	p1, _ := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	m.Append(p1, "e4", core.ColorWhite, "", false)
	m.RecordHallucination(core.ColorBlack, "Ra8", "own piece")

	m.Reset(board.Initial())

	if m.MoveCount() != 0 {
		t.Error("Reset left moves in the record")
	}
	if m.Hallucinations(core.ColorBlack) != 0 {
		t.Error("Reset left a hallucination counter")
	}
	if m.LastReject() != nil {
		t.Error("Reset left a stale rejection")
	}
	if m.Current().FEN() != board.StartingFEN {
		t.Errorf("Current() = %q, want the starting position", m.Current().FEN())
	}
}
