// FILE: internal/rules/moves_test.go
package rules

import (
	"testing"

	"llmchess/internal/board"
)

func TestLegalMoves_InitialPosition(t *testing.T) {
	moves := LegalMoves(board.Initial())
	if len(moves) != 20 {
		t.Fatalf("LegalMoves(initial) = %d moves, want 20", len(moves))
	}
}

// Every generated move must round-trip through the validator: the generator
// and ValidateMove agree on what is legal.
func TestLegalMoves_ValidatorAgreement(t *testing.T) {
	fens := []string{
		board.StartingFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"r3k2r/pbppqppp/1pn2n2/4p3/2B1P3/2NP1N2/PPP2PPP/R1BQ1RK1 b kq - 0 8",
		"8/4P3/8/8/3k4/8/4K3/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
	}

	for _, fen := range fens {
		pos := mustFEN(t, fen)
		mover := pos.Turn()
		for _, m := range LegalMoves(pos) {
			if IsInCheck(Apply(pos, m), mover) {
				t.Errorf("%s: generated move %s leaves own king in check", fen, m.Coord())
			}
			if m.Castle != CastleNone {
				continue // no coordinate form for castling
			}
			if _, err := ValidateMove(pos, m.Coord()); err != nil {
				t.Errorf("%s: generated move %s rejected by validator: %v", fen, m.Coord(), err)
			}
		}
	}
}

func TestLegalMoves_PromotionExpansion(t *testing.T) {
	// Lone pawn one step from promotion, kings far away.
	pos := mustFEN(t, "8/4P3/8/8/8/8/8/K1k5 w - - 0 1")

	promos := map[byte]bool{}
	for _, m := range LegalMoves(pos) {
		if m.Piece == 'P' && m.ToRank == 7 {
			promos[m.Promotion] = true
		}
	}
	for _, kind := range []byte{'Q', 'R', 'B', 'N'} {
		if !promos[kind] {
			t.Errorf("promotion to %c not generated", kind)
		}
	}
}

func TestLegalMoves_IncludesCastling(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	var kingside, queenside bool
	for _, m := range LegalMoves(pos) {
		switch m.Castle {
		case CastleKingside:
			kingside = true
		case CastleQueenside:
			queenside = true
		}
	}
	if !kingside || !queenside {
		t.Errorf("castle generation: kingside=%v queenside=%v, want both", kingside, queenside)
	}
}

func TestLegalMoves_CheckEvasionsOnly(t *testing.T) {
	// White king on e1 checked by the rook on e8; a knight on b1 cannot help,
	// only king steps off the file are legal.
	pos := mustFEN(t, "4r1k1/8/8/8/8/8/8/N3K3 w - - 0 1")

	for _, m := range LegalMoves(pos) {
		if m.Piece != 'K' {
			t.Errorf("non-evasion move generated: %+v", m)
		}
	}
	if len(LegalMoves(pos)) == 0 {
		t.Error("checked king with escape squares reported no moves")
	}
}

func TestHasLegalMoves(t *testing.T) {
	if !HasLegalMoves(board.Initial()) {
		t.Error("initial position reported no legal moves")
	}
	mate := mustFEN(t, "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	if HasLegalMoves(mate) {
		t.Error("mated position reported legal moves")
	}
}
