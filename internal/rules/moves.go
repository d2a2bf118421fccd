// FILE: internal/rules/moves.go
package rules

import (
	"llmchess/internal/board"
	"llmchess/internal/core"
)

var promotionKinds = [4]byte{'Q', 'R', 'B', 'N'}

// LegalMoves enumerates every legal move for the side to move, in board-scan
// order of the source square (ranks 8..1, files a..h). The list is recomputed
// on every call; nothing is cached.
func LegalMoves(pos board.Position) []Move {
	mover := pos.Turn()
	var moves []Move

	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			piece := pos.At(f, r)
			if piece == 0 || board.PieceColor(piece) != mover {
				continue
			}
			switch board.PieceKind(piece) {
			case 'P':
				moves = appendPawnMoves(moves, pos, mover, f, r)
			case 'N':
				moves = appendStepMoves(moves, pos, mover, 'N', f, r, knightOffsets[:])
			case 'K':
				moves = appendStepMoves(moves, pos, mover, 'K', f, r, kingOffsets[:])
			case 'B':
				moves = appendSlidingMoves(moves, pos, mover, 'B', f, r, diagonalDirs[:])
			case 'R':
				moves = appendSlidingMoves(moves, pos, mover, 'R', f, r, straightDirs[:])
			case 'Q':
				moves = appendSlidingMoves(moves, pos, mover, 'Q', f, r, diagonalDirs[:])
				moves = appendSlidingMoves(moves, pos, mover, 'Q', f, r, straightDirs[:])
			}
		}
	}

	moves = appendCastleMoves(moves, pos)
	return moves
}

// HasLegalMoves is the cheap form used by terminal detection: it stops at the
// first legal move instead of materializing the full list.
func HasLegalMoves(pos board.Position) bool {
	return len(LegalMoves(pos)) > 0
}

func appendIfLegal(moves []Move, pos board.Position, m Move) []Move {
	if IsInCheck(Apply(pos, m), pos.Turn()) {
		return moves
	}
	return append(moves, m)
}

func appendPawnMoves(moves []Move, pos board.Position, mover core.Color, f, r int) []Move {
	dir := pawnDirection(mover)
	lastRank := 7
	startRank := 1
	if mover == core.ColorBlack {
		lastRank = 0
		startRank = 6
	}

	emit := func(toFile, toRank int, capture, enPassant bool) []Move {
		m := Move{
			Piece: 'P', FromFile: f, FromRank: r, ToFile: toFile, ToRank: toRank,
			Capture: capture, EnPassant: enPassant,
		}
		if toRank == lastRank {
			for _, kind := range promotionKinds {
				m.Promotion = kind
				moves = appendIfLegal(moves, pos, m)
			}
			return moves
		}
		return appendIfLegal(moves, pos, m)
	}

	if onBoard(f, r+dir) && pos.At(f, r+dir) == 0 {
		moves = emit(f, r+dir, false, false)
		if r == startRank && pos.At(f, r+2*dir) == 0 {
			moves = emit(f, r+2*dir, false, false)
		}
	}

	for _, df := range [2]int{-1, 1} {
		tf, tr := f+df, r+dir
		if !onBoard(tf, tr) {
			continue
		}
		target := pos.At(tf, tr)
		if target != 0 && board.PieceColor(target) != mover {
			moves = emit(tf, tr, true, false)
		} else if target == 0 && pos.EnPassant() == board.SquareName(tf, tr) {
			moves = emit(tf, tr, true, true)
		}
	}
	return moves
}

func appendStepMoves(moves []Move, pos board.Position, mover core.Color, kind byte, f, r int, offsets [][2]int) []Move {
	for _, d := range offsets {
		tf, tr := f+d[0], r+d[1]
		if !onBoard(tf, tr) {
			continue
		}
		target := pos.At(tf, tr)
		if target != 0 && board.PieceColor(target) == mover {
			continue
		}
		moves = appendIfLegal(moves, pos, Move{
			Piece: kind, FromFile: f, FromRank: r, ToFile: tf, ToRank: tr,
			Capture: target != 0,
		})
	}
	return moves
}

func appendSlidingMoves(moves []Move, pos board.Position, mover core.Color, kind byte, f, r int, dirs [][2]int) []Move {
	for _, d := range dirs {
		tf, tr := f+d[0], r+d[1]
		for onBoard(tf, tr) {
			target := pos.At(tf, tr)
			if target != 0 {
				if board.PieceColor(target) != mover {
					moves = appendIfLegal(moves, pos, Move{
						Piece: kind, FromFile: f, FromRank: r, ToFile: tf, ToRank: tr,
						Capture: true,
					})
				}
				break
			}
			moves = appendIfLegal(moves, pos, Move{
				Piece: kind, FromFile: f, FromRank: r, ToFile: tf, ToRank: tr,
			})
			tf += d[0]
			tr += d[1]
		}
	}
	return moves
}

func appendCastleMoves(moves []Move, pos board.Position) []Move {
	for _, side := range [2]CastleSide{CastleKingside, CastleQueenside} {
		if m, err := validateCastle(pos, sanMove{castle: side}, ""); err == nil {
			moves = append(moves, m)
		}
	}
	return moves
}
