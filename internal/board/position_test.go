// FILE: internal/board/position_test.go
package board

import (
	"testing"

	"llmchess/internal/core"
)

func TestParseFEN_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{
			name: "starting position",
			fen:  StartingFEN,
		},
		{
			name: "after 1. e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name: "no castling rights",
			fen:  "4k3/8/8/8/8/8/8/4K2R w - - 12 40",
		},
		{
			name: "partial castling rights",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b Kq - 3 20",
		},
		{
			name: "en passant target for black",
			fen:  "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
		},
		{
			name: "sparse endgame",
			fen:  "8/8/4k3/8/2K5/8/4P3/8 w - - 7 55",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseFEN(tt.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q) failed: %v", tt.fen, err)
			}
			if got := p.FEN(); got != tt.fen {
				t.Errorf("FEN() = %q, want %q", got, tt.fen)
			}
		})
	}
}

func TestParseFEN_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few fields", "8/8/8/8/8/8/8/8 w KQkq -"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"overfull rank", "9/8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "7/8/8/8/8/8/8/8 w - - 0 1"},
		{"unknown piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"bad turn", "8/8/8/8/8/8/8/8 x - - 0 1"},
		{"bad castling flag", "8/8/8/8/8/8/8/8 w Z - 0 1"},
		{"bad en passant", "8/8/8/8/8/8/8/8 w - e9 0 1"},
		{"negative halfmove", "8/8/8/8/8/8/8/8 w - - -1 1"},
		{"zero fullmove", "8/8/8/8/8/8/8/8 w - - 0 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.fen); err == nil {
				t.Errorf("ParseFEN(%q) succeeded, want error", tt.fen)
			}
		})
	}
}

func TestPositionAccessors(t *testing.T) {
	p := Initial()

	if p.Turn() != core.ColorWhite {
		t.Errorf("Turn() = %v, want white", p.Turn())
	}
	if got := p.At(4, 0); got != 'K' {
		t.Errorf("At(e1) = %c, want K", got)
	}
	if got := p.At(4, 7); got != 'k' {
		t.Errorf("At(e8) = %c, want k", got)
	}
	if got := p.PieceAt("d8"); got != 'q' {
		t.Errorf("PieceAt(d8) = %c, want q", got)
	}
	if got := p.PieceAt("e4"); got != 0 {
		t.Errorf("PieceAt(e4) = %c, want empty", got)
	}
	if got := p.At(-1, 0); got != 0 {
		t.Errorf("At(-1,0) = %c, want 0", got)
	}
	if got := p.PieceAt("zz"); got != 0 {
		t.Errorf("PieceAt(zz) = %c, want 0", got)
	}
}

func TestBuildersReturnCopies(t *testing.T) {
	p := Initial()

	q := p.WithPiece(4, 3, 'P').WithTurn(core.ColorBlack).WithEnPassant("e3")

	if p.At(4, 3) != 0 {
		t.Error("WithPiece mutated the receiver")
	}
	if p.Turn() != core.ColorWhite {
		t.Error("WithTurn mutated the receiver")
	}
	if p.EnPassant() != "" {
		t.Error("WithEnPassant mutated the receiver")
	}
	if q.At(4, 3) != 'P' || q.Turn() != core.ColorBlack || q.EnPassant() != "e3" {
		t.Error("builder chain lost a change")
	}
}

func TestRepetitionKey(t *testing.T) {
	a, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 42 30")
	if err != nil {
		t.Fatal(err)
	}

	if a.RepetitionKey() != b.RepetitionKey() {
		t.Error("positions differing only in clocks should share a repetition key")
	}

	c := a.WithTurn(core.ColorBlack)
	if a.RepetitionKey() == c.RepetitionKey() {
		t.Error("side to move must be part of the repetition key")
	}

	d := a.WithCastling(Castling{})
	if a.RepetitionKey() == d.RepetitionKey() {
		t.Error("castling rights must be part of the repetition key")
	}
}

func TestCastlingString(t *testing.T) {
	tests := []struct {
		name string
		c    Castling
		want string
	}{
		{"all rights", Castling{true, true, true, true}, "KQkq"},
		{"none", Castling{}, "-"},
		{"white only", Castling{WhiteKingside: true, WhiteQueenside: true}, "KQ"},
		{"mixed", Castling{WhiteKingside: true, BlackQueenside: true}, "Kq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPieceHelpers(t *testing.T) {
	if !IsWhitePiece('Q') || IsWhitePiece('q') {
		t.Error("IsWhitePiece misclassified a queen")
	}
	if PieceColor('n') != core.ColorBlack {
		t.Error("PieceColor('n') should be black")
	}
	if PieceKind('n') != 'N' {
		t.Errorf("PieceKind('n') = %c, want N", PieceKind('n'))
	}
	if ColoredPiece('N', core.ColorBlack) != 'n' {
		t.Error("ColoredPiece should lowercase for black")
	}
	if ColoredPiece('N', core.ColorWhite) != 'N' {
		t.Error("ColoredPiece should keep uppercase for white")
	}
	if SquareName(4, 3) != "e4" {
		t.Errorf("SquareName(4,3) = %q, want e4", SquareName(4, 3))
	}
	if !IsSquare("h8") || IsSquare("i1") || IsSquare("e") {
		t.Error("IsSquare boundary check failed")
	}
}
