// FILE: internal/board/position.go
package board

import (
	"fmt"
	"strings"

	"llmchess/internal/core"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Castling holds the four independent castling-rights flags.
type Castling struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

func (c Castling) String() string {
	var sb strings.Builder
	if c.WhiteKingside {
		sb.WriteByte('K')
	}
	if c.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if c.BlackKingside {
		sb.WriteByte('k')
	}
	if c.BlackQueenside {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Position is the canonical game state record. It is a value type: applying
// a move produces a new Position, the old one is never mutated in place.
//
// squares[0] is rank 8 (FEN order), squares[7] is rank 1; pieces are FEN
// letters ('P'..'K' white, 'p'..'k' black), 0 marks an empty square.
type Position struct {
	squares   [8][8]byte
	turn      core.Color
	castling  Castling
	enPassant string // target square such as "e3", "" for none
	halfmove  int
	fullmove  int
}

// ParseFEN builds a Position from the 6-field FEN encoding.
func ParseFEN(fen string) (Position, error) {
	var p Position

	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return p, fmt.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return p, fmt.Errorf("invalid FEN: expected 8 ranks")
	}

	for r := 0; r < 8; r++ {
		file := 0
		for _, ch := range ranks[r] {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
			} else {
				if file >= 8 {
					return p, fmt.Errorf("invalid FEN: too many pieces in rank %d", 8-r)
				}
				if !isPieceLetter(byte(ch)) {
					return p, fmt.Errorf("invalid FEN: unknown piece %q", ch)
				}
				p.squares[r][file] = byte(ch)
				file++
			}
		}
		if file != 8 {
			return p, fmt.Errorf("invalid FEN: rank %d has %d files", 8-r, file)
		}
	}

	switch parts[1] {
	case "w":
		p.turn = core.ColorWhite
	case "b":
		p.turn = core.ColorBlack
	default:
		return p, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}

	if parts[2] != "-" {
		for _, ch := range parts[2] {
			switch ch {
			case 'K':
				p.castling.WhiteKingside = true
			case 'Q':
				p.castling.WhiteQueenside = true
			case 'k':
				p.castling.BlackKingside = true
			case 'q':
				p.castling.BlackQueenside = true
			default:
				return p, fmt.Errorf("invalid FEN: castling flag %q", ch)
			}
		}
	}

	if parts[3] != "-" {
		if !IsSquare(parts[3]) {
			return p, fmt.Errorf("invalid FEN: en passant square %q", parts[3])
		}
		p.enPassant = parts[3]
	}

	if _, err := fmt.Sscanf(parts[4], "%d", &p.halfmove); err != nil || p.halfmove < 0 {
		return p, fmt.Errorf("invalid FEN: halfmove counter")
	}
	if _, err := fmt.Sscanf(parts[5], "%d", &p.fullmove); err != nil || p.fullmove < 1 {
		return p, fmt.Errorf("invalid FEN: fullmove counter")
	}

	return p, nil
}

// Initial returns the standard starting position.
func Initial() Position {
	p, _ := ParseFEN(StartingFEN)
	return p
}

// FEN serializes the position back to its canonical 6-field encoding.
// ParseFEN(p.FEN()) round-trips losslessly.
func (p Position) FEN() string {
	var sb strings.Builder

	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			piece := p.squares[r][f]
			if piece == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(byte(p.turn))
	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	if p.enPassant == "" {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.enPassant)
	}
	fmt.Fprintf(&sb, " %d %d", p.halfmove, p.fullmove)

	return sb.String()
}

// RepetitionKey is the position identity used for threefold-repetition
// detection: board layout, side to move, castling rights and en passant,
// without the move clocks.
func (p Position) RepetitionKey() string {
	fen := p.FEN()
	// Strip the two clock fields.
	idx := strings.LastIndex(fen, " ")
	idx = strings.LastIndex(fen[:idx], " ")
	return fen[:idx]
}

func (p Position) Turn() core.Color { return p.turn }

func (p Position) Castling() Castling { return p.castling }

func (p Position) EnPassant() string { return p.enPassant }

func (p Position) HalfmoveClock() int { return p.halfmove }

func (p Position) FullmoveNumber() int { return p.fullmove }

// At returns the piece on (file, rank) with 0-based coordinates where
// file 0 = 'a' and rank 0 = rank 1. Returns 0 for empty or out of range.
func (p Position) At(file, rank int) byte {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0
	}
	return p.squares[7-rank][file]
}

// PieceAt returns the piece on an algebraic square such as "e4".
func (p Position) PieceAt(square string) byte {
	if !IsSquare(square) {
		return 0
	}
	return p.At(int(square[0]-'a'), int(square[1]-'1'))
}

// Builder methods used by the rules package; each returns a modified copy.

func (p Position) WithPiece(file, rank int, piece byte) Position {
	p.squares[7-rank][file] = piece
	return p
}

func (p Position) WithTurn(turn core.Color) Position {
	p.turn = turn
	return p
}

func (p Position) WithCastling(c Castling) Position {
	p.castling = c
	return p
}

func (p Position) WithEnPassant(square string) Position {
	p.enPassant = square
	return p
}

func (p Position) WithClocks(halfmove, fullmove int) Position {
	p.halfmove = halfmove
	p.fullmove = fullmove
	return p
}

// ToASCII renders the board from white's perspective.
func (p Position) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < 8; f++ {
			piece := p.squares[r][f]
			if piece == 0 {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}

// SquareName converts 0-based (file, rank) to algebraic notation.
func SquareName(file, rank int) string {
	return string([]byte{byte('a' + file), byte('1' + rank)})
}

// IsSquare reports whether s names a board square such as "e4".
func IsSquare(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// IsWhitePiece reports whether the FEN letter belongs to white.
func IsWhitePiece(piece byte) bool {
	return piece >= 'A' && piece <= 'Z'
}

// PieceColor returns the owning side of a FEN piece letter.
func PieceColor(piece byte) core.Color {
	if IsWhitePiece(piece) {
		return core.ColorWhite
	}
	return core.ColorBlack
}

// PieceKind upper-cases a FEN letter to its colorless kind ('P', 'N', ...).
func PieceKind(piece byte) byte {
	if piece >= 'a' && piece <= 'z' {
		return piece - 'a' + 'A'
	}
	return piece
}

// ColoredPiece builds the FEN letter for a kind owned by a side.
func ColoredPiece(kind byte, color core.Color) byte {
	if color == core.ColorWhite {
		return kind
	}
	return kind - 'A' + 'a'
}

func isPieceLetter(c byte) bool {
	switch PieceKind(c) {
	case 'P', 'N', 'B', 'R', 'Q', 'K':
		return true
	}
	return false
}
