// FILE: internal/rules/check.go
package rules

import (
	"llmchess/internal/board"
	"llmchess/internal/core"
)

var knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}

var kingOffsets = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

var diagonalDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

var straightDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func onBoard(file, rank int) bool {
	return file >= 0 && file <= 7 && rank >= 0 && rank <= 7
}

// pawnDirection is the rank delta a pawn of the given color advances by.
func pawnDirection(c core.Color) int {
	if c == core.ColorWhite {
		return 1
	}
	return -1
}

// IsSquareAttacked reports whether any piece of byColor attacks (file, rank),
// ignoring king safety of the attacker.
func IsSquareAttacked(pos board.Position, file, rank int, byColor core.Color) bool {
	// Pawns attack diagonally toward their advance direction.
	pawn := board.ColoredPiece('P', byColor)
	pawnRank := rank - pawnDirection(byColor)
	for _, df := range [2]int{-1, 1} {
		if onBoard(file+df, pawnRank) && pos.At(file+df, pawnRank) == pawn {
			return true
		}
	}

	knight := board.ColoredPiece('N', byColor)
	for _, d := range knightOffsets {
		if onBoard(file+d[0], rank+d[1]) && pos.At(file+d[0], rank+d[1]) == knight {
			return true
		}
	}

	king := board.ColoredPiece('K', byColor)
	for _, d := range kingOffsets {
		if onBoard(file+d[0], rank+d[1]) && pos.At(file+d[0], rank+d[1]) == king {
			return true
		}
	}

	bishop := board.ColoredPiece('B', byColor)
	queen := board.ColoredPiece('Q', byColor)
	for _, d := range diagonalDirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			piece := pos.At(f, r)
			if piece != 0 {
				if piece == bishop || piece == queen {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}

	rook := board.ColoredPiece('R', byColor)
	for _, d := range straightDirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			piece := pos.At(f, r)
			if piece != 0 {
				if piece == rook || piece == queen {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}

	return false
}

// findKing locates the king of the given color; ok is false when absent
// (possible only on director-edited boards).
func findKing(pos board.Position, color core.Color) (file, rank int, ok bool) {
	king := board.ColoredPiece('K', color)
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			if pos.At(f, r) == king {
				return f, r, true
			}
		}
	}
	return 0, 0, false
}

// IsInCheck reports whether color's king is attacked in the given position.
func IsInCheck(pos board.Position, color core.Color) bool {
	f, r, ok := findKing(pos, color)
	if !ok {
		return false
	}
	return IsSquareAttacked(pos, f, r, core.OppositeColor(color))
}
