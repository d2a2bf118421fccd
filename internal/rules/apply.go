// FILE: internal/rules/apply.go
package rules

import (
	"llmchess/internal/board"
	"llmchess/internal/core"
)

// Apply produces the position after a validated move. It is a pure function:
// the input position is untouched, clocks, castling rights, en-passant target,
// side to move and move number are all updated on the returned copy.
func Apply(pos board.Position, m Move) board.Position {
	mover := pos.Turn()

	if m.Castle != CastleNone {
		return applyCastle(pos, m)
	}

	piece := pos.At(m.FromFile, m.FromRank)
	captured := pos.At(m.ToFile, m.ToRank)

	next := pos.WithPiece(m.FromFile, m.FromRank, 0)

	if m.EnPassant {
		// The captured pawn sits behind the target square.
		next = next.WithPiece(m.ToFile, m.ToRank-pawnDirection(mover), 0)
	}

	if m.Promotion != 0 {
		next = next.WithPiece(m.ToFile, m.ToRank, board.ColoredPiece(m.Promotion, mover))
	} else {
		next = next.WithPiece(m.ToFile, m.ToRank, piece)
	}

	// Castling rights: king moves strip both flags, rook moves and rook
	// captures strip the matching corner flag.
	rights := pos.Castling()
	if m.Piece == 'K' {
		if mover == core.ColorWhite {
			rights.WhiteKingside = false
			rights.WhiteQueenside = false
		} else {
			rights.BlackKingside = false
			rights.BlackQueenside = false
		}
	}
	rights = stripRookRights(rights, m.FromFile, m.FromRank)
	rights = stripRookRights(rights, m.ToFile, m.ToRank)
	next = next.WithCastling(rights)

	// En-passant target is set iff this move is a double pawn push.
	ep := ""
	if m.Piece == 'P' && abs(m.ToRank-m.FromRank) == 2 {
		ep = board.SquareName(m.FromFile, (m.FromRank+m.ToRank)/2)
	}
	next = next.WithEnPassant(ep)

	halfmove := pos.HalfmoveClock() + 1
	if m.Piece == 'P' || captured != 0 || m.EnPassant {
		halfmove = 0
	}
	fullmove := pos.FullmoveNumber()
	if mover == core.ColorBlack {
		fullmove++
	}
	next = next.WithClocks(halfmove, fullmove)

	return next.WithTurn(core.OppositeColor(mover))
}

func applyCastle(pos board.Position, m Move) board.Position {
	mover := pos.Turn()
	rank := 0
	if mover == core.ColorBlack {
		rank = 7
	}

	kingTo, rookFrom, rookTo := 6, 7, 5
	if m.Castle == CastleQueenside {
		kingTo, rookFrom, rookTo = 2, 0, 3
	}

	next := pos.
		WithPiece(4, rank, 0).
		WithPiece(kingTo, rank, board.ColoredPiece('K', mover)).
		WithPiece(rookFrom, rank, 0).
		WithPiece(rookTo, rank, board.ColoredPiece('R', mover))

	rights := pos.Castling()
	if mover == core.ColorWhite {
		rights.WhiteKingside = false
		rights.WhiteQueenside = false
	} else {
		rights.BlackKingside = false
		rights.BlackQueenside = false
	}

	fullmove := pos.FullmoveNumber()
	if mover == core.ColorBlack {
		fullmove++
	}

	return next.
		WithCastling(rights).
		WithEnPassant("").
		WithClocks(pos.HalfmoveClock()+1, fullmove).
		WithTurn(core.OppositeColor(mover))
}

func stripRookRights(rights board.Castling, file, rank int) board.Castling {
	switch {
	case file == 0 && rank == 0:
		rights.WhiteQueenside = false
	case file == 7 && rank == 0:
		rights.WhiteKingside = false
	case file == 0 && rank == 7:
		rights.BlackQueenside = false
	case file == 7 && rank == 7:
		rights.BlackKingside = false
	}
	return rights
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
