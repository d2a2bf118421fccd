// FILE: internal/rules/notation.go
package rules

import "strings"

// sanMove is the raw decoded notation before board-context resolution.
// Unknown source coordinates are -1.
type sanMove struct {
	piece     byte // 'P', 'N', 'B', 'R', 'Q', 'K'
	fromFile  int
	fromRank  int
	toFile    int
	toRank    int
	capture   bool
	promotion byte
	castle    CastleSide
}

func isFileChar(c byte) bool { return c >= 'a' && c <= 'h' }

func isRankChar(c byte) bool { return c >= '1' && c <= '8' }

func pieceLetter(c byte) byte {
	switch c {
	case 'K', 'Q', 'R', 'B', 'N':
		return c
	}
	return 0
}

func promotionLetter(c byte) byte {
	switch c {
	case 'Q', 'R', 'B', 'N':
		return c
	case 'q', 'r', 'b', 'n':
		return c - 'a' + 'A'
	}
	return 0
}

func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// decodeSAN parses SAN-like notation: pawn moves ("e4", "exd5", "e8=Q"),
// piece moves with optional file/rank disambiguation ("Nf3", "Nbd2", "R1e1",
// "Qh4e1"), castling tokens, and long coordinate form ("e2e4", "e7e8q").
// Trailing check marks and en-passant suffixes are accepted and ignored.
func decodeSAN(notation string) (sanMove, bool) {
	m := sanMove{fromFile: -1, fromRank: -1, toFile: -1, toRank: -1}

	s := strings.TrimSpace(notation)
	s = strings.TrimRight(s, "+#!?")
	if cut, ok := strings.CutSuffix(s, "e.p."); ok {
		s = strings.TrimSpace(cut)
	} else if cut, ok := strings.CutSuffix(s, " ep"); ok {
		s = strings.TrimSpace(cut)
	}
	if s == "" {
		return m, false
	}

	// Castling tokens: O-O, O-O-O, 0-0, also without separators.
	if isCastlingChar(s[0]) {
		n := 0
		for _, ch := range []byte(s) {
			if isCastlingChar(ch) {
				n++
			} else if ch != '-' {
				return m, false
			}
		}
		m.piece = 'K'
		switch n {
		case 2:
			m.castle = CastleKingside
		case 3:
			m.castle = CastleQueenside
		default:
			return m, false
		}
		return m, true
	}

	// Long coordinate form (UCI style): e2e4, e7e8q. Piece kind is resolved
	// later from the source square.
	if len(s) >= 4 && isFileChar(s[0]) && isRankChar(s[1]) && isFileChar(s[2]) && isRankChar(s[3]) {
		rest := s[4:]
		if rest == "" || (len(rest) == 1 && promotionLetter(rest[0]) != 0) {
			m.fromFile = int(s[0] - 'a')
			m.fromRank = int(s[1] - '1')
			m.toFile = int(s[2] - 'a')
			m.toRank = int(s[3] - '1')
			if rest != "" {
				m.promotion = promotionLetter(rest[0])
			}
			return m, true
		}
	}

	if piece := pieceLetter(s[0]); piece != 0 {
		return decodePieceMove(s[1:], piece)
	}
	if isFileChar(s[0]) {
		return decodePawnMove(s)
	}
	return m, false
}

func decodePawnMove(s string) (sanMove, bool) {
	m := sanMove{piece: 'P', fromFile: -1, fromRank: -1, toFile: -1, toRank: -1}

	// Optional promotion suffix first: "=Q" or bare piece letter.
	if i := strings.IndexByte(s, '='); i != -1 {
		if i != len(s)-2 {
			return m, false
		}
		m.promotion = promotionLetter(s[len(s)-1])
		if m.promotion == 0 {
			return m, false
		}
		s = s[:i]
	} else if len(s) >= 3 && pieceLetter(s[len(s)-1]) != 0 && pieceLetter(s[len(s)-1]) != 'K' {
		m.promotion = s[len(s)-1]
		s = s[:len(s)-1]
	}

	switch {
	case len(s) == 2 && isFileChar(s[0]) && isRankChar(s[1]):
		// e4
		m.toFile = int(s[0] - 'a')
		m.toRank = int(s[1] - '1')
	case len(s) == 4 && isFileChar(s[0]) && s[1] == 'x' && isFileChar(s[2]) && isRankChar(s[3]):
		// exd5
		m.fromFile = int(s[0] - 'a')
		m.capture = true
		m.toFile = int(s[2] - 'a')
		m.toRank = int(s[3] - '1')
	default:
		return m, false
	}
	return m, true
}

// decodePieceMove handles the remainder after the piece letter: "f3", "xf3",
// "bd2", "bxd2", "1e1", "h4e1", "h4xe1". The destination is always the last
// two characters; anything before an optional 'x' is disambiguation.
func decodePieceMove(s string, piece byte) (sanMove, bool) {
	m := sanMove{piece: piece, fromFile: -1, fromRank: -1, toFile: -1, toRank: -1}

	if len(s) < 2 {
		return m, false
	}
	dest := s[len(s)-2:]
	if !isFileChar(dest[0]) || !isRankChar(dest[1]) {
		return m, false
	}
	m.toFile = int(dest[0] - 'a')
	m.toRank = int(dest[1] - '1')

	rest := s[:len(s)-2]
	if strings.HasSuffix(rest, "x") {
		m.capture = true
		rest = rest[:len(rest)-1]
	}

	switch len(rest) {
	case 0:
	case 1:
		switch {
		case isFileChar(rest[0]):
			m.fromFile = int(rest[0] - 'a')
		case isRankChar(rest[0]):
			m.fromRank = int(rest[0] - '1')
		default:
			return m, false
		}
	case 2:
		if !isFileChar(rest[0]) || !isRankChar(rest[1]) {
			return m, false
		}
		m.fromFile = int(rest[0] - 'a')
		m.fromRank = int(rest[1] - '1')
	default:
		return m, false
	}
	return m, true
}
