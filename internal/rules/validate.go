// FILE: internal/rules/validate.go
package rules

import (
	"fmt"

	"llmchess/internal/board"
	"llmchess/internal/core"
)

// ValidateMove parses SAN-like notation against a position and resolves it to
// a fully specified legal move for the side to move. Rejections wrap one of
// the package sentinel errors with the offending notation.
//
// When several pieces of the stated kind can reach the destination and no
// disambiguating hint is given, the first legal candidate in board-scan order
// wins: ranks 8 down to 1, files a through h. This tie-break is part of the
// contract, not an accident.
//
// A pawn move to the last rank without a promotion token is rejected with
// ErrPromotionRequired; WithQueenPromotion offers the convenience rewrite.
func ValidateMove(pos board.Position, notation string) (Move, error) {
	san, ok := decodeSAN(notation)
	if !ok {
		return Move{}, fmt.Errorf("%q: %w", notation, ErrUnparsable)
	}

	mover := pos.Turn()

	// Coordinate form carries no piece letter: resolve it from the source
	// square, and recognize a two-file king slide as castling.
	if san.piece == 0 {
		piece := pos.At(san.fromFile, san.fromRank)
		if piece == 0 || board.PieceColor(piece) != mover {
			return Move{}, fmt.Errorf("%q: no %s piece on %s: %w",
				notation, mover.Name(), board.SquareName(san.fromFile, san.fromRank), ErrNoPiece)
		}
		san.piece = board.PieceKind(piece)
		if san.piece == 'K' && abs(san.toFile-san.fromFile) == 2 {
			if san.toFile > san.fromFile {
				san.castle = CastleKingside
			} else {
				san.castle = CastleQueenside
			}
		}
	}

	if san.castle != CastleNone {
		return validateCastle(pos, san, notation)
	}

	lastRank := 7
	if mover == core.ColorBlack {
		lastRank = 0
	}
	if san.piece == 'P' {
		if san.toRank == lastRank && san.promotion == 0 {
			return Move{}, fmt.Errorf("%q: %w", notation, ErrPromotionRequired)
		}
		if san.toRank != lastRank && san.promotion != 0 {
			return Move{}, fmt.Errorf("%q: promotion only on the last rank: %w", notation, ErrUnparsable)
		}
	} else if san.promotion != 0 {
		return Move{}, fmt.Errorf("%q: only pawns promote: %w", notation, ErrUnparsable)
	}

	dest := pos.At(san.toFile, san.toRank)
	if dest != 0 && board.PieceColor(dest) == mover {
		return Move{}, fmt.Errorf("%q: %w", notation, ErrOwnPiece)
	}

	target := board.SquareName(san.toFile, san.toRank)
	enPassant := false
	if dest != 0 {
		// Implied capture even without an 'x' marker.
		san.capture = true
	} else if san.piece == 'P' && target == pos.EnPassant() &&
		(san.capture || (san.fromFile >= 0 && san.fromFile != san.toFile)) {
		enPassant = true
		san.capture = true
	} else if san.capture {
		return Move{}, fmt.Errorf("%q: %w", notation, ErrCaptureOnEmpty)
	}

	hinted := san.fromFile >= 0 || san.fromRank >= 0

	// Board-scan order: ranks 8..1, files a..h.
	var candidates []Move
	sawReachable := false
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			piece := pos.At(f, r)
			if piece == 0 || board.PieceColor(piece) != mover || board.PieceKind(piece) != san.piece {
				continue
			}
			if san.fromFile >= 0 && f != san.fromFile {
				continue
			}
			if san.fromRank >= 0 && r != san.fromRank {
				continue
			}
			if !canReach(pos, san, mover, f, r, enPassant) {
				continue
			}
			sawReachable = true
			m := Move{
				Piece:     san.piece,
				FromFile:  f,
				FromRank:  r,
				ToFile:    san.toFile,
				ToRank:    san.toRank,
				Capture:   san.capture,
				EnPassant: enPassant,
				Promotion: san.promotion,
				SAN:       notation,
			}
			if IsInCheck(Apply(pos, m), mover) {
				continue
			}
			candidates = append(candidates, m)
		}
	}

	switch {
	case len(candidates) == 0 && sawReachable:
		return Move{}, fmt.Errorf("%q: %w", notation, ErrLeavesKingInCheck)
	case len(candidates) == 0:
		return Move{}, fmt.Errorf("%q: %w", notation, ErrNoPiece)
	case len(candidates) > 1 && hinted:
		return Move{}, fmt.Errorf("%q: %w", notation, ErrAmbiguous)
	}
	return candidates[0], nil
}

// WithQueenPromotion appends a queen promotion token to bare pawn notation.
// The orchestrator uses it as the documented convenience path when an agent
// omits the promotion piece.
func WithQueenPromotion(notation string) string {
	return notation + "=Q"
}

// canReach checks pseudo-legal geometry and path clearance for a piece of the
// given kind standing on (f, r) moving to the destination in san. King safety
// is the caller's concern.
func canReach(pos board.Position, san sanMove, mover core.Color, f, r int, enPassant bool) bool {
	df := san.toFile - f
	dr := san.toRank - r
	if df == 0 && dr == 0 {
		return false
	}

	switch san.piece {
	case 'P':
		dir := pawnDirection(mover)
		if san.capture {
			return abs(df) == 1 && dr == dir
		}
		if df != 0 {
			return false
		}
		if dr == dir {
			return true // destination emptiness checked by the caller
		}
		startRank := 1
		if mover == core.ColorBlack {
			startRank = 6
		}
		return dr == 2*dir && r == startRank && pos.At(f, r+dir) == 0

	case 'N':
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)

	case 'B':
		return abs(df) == abs(dr) && pathClear(pos, f, r, san.toFile, san.toRank)

	case 'R':
		return (df == 0 || dr == 0) && pathClear(pos, f, r, san.toFile, san.toRank)

	case 'Q':
		return (abs(df) == abs(dr) || df == 0 || dr == 0) && pathClear(pos, f, r, san.toFile, san.toRank)

	case 'K':
		return abs(df) <= 1 && abs(dr) <= 1
	}
	return false
}

// pathClear walks the squares strictly between two squares on a shared line
// or diagonal.
func pathClear(pos board.Position, fromFile, fromRank, toFile, toRank int) bool {
	df := sign(toFile - fromFile)
	dr := sign(toRank - fromRank)
	f, r := fromFile+df, fromRank+dr
	for f != toFile || r != toRank {
		if pos.At(f, r) != 0 {
			return false
		}
		f += df
		r += dr
	}
	return true
}

func validateCastle(pos board.Position, san sanMove, notation string) (Move, error) {
	mover := pos.Turn()
	rights := pos.Castling()
	rank := 0
	if mover == core.ColorBlack {
		rank = 7
	}

	allowed := false
	kingTo, rookFrom := 6, 7
	if san.castle == CastleKingside {
		allowed = rights.WhiteKingside
		if mover == core.ColorBlack {
			allowed = rights.BlackKingside
		}
	} else {
		kingTo, rookFrom = 2, 0
		allowed = rights.WhiteQueenside
		if mover == core.ColorBlack {
			allowed = rights.BlackQueenside
		}
	}
	if !allowed {
		return Move{}, fmt.Errorf("%q: %w", notation, ErrCastlingRights)
	}

	if pos.At(4, rank) != board.ColoredPiece('K', mover) || pos.At(rookFrom, rank) != board.ColoredPiece('R', mover) {
		return Move{}, fmt.Errorf("%q: king or rook not on its home square: %w", notation, ErrCastlingRights)
	}

	between := []int{5, 6}
	if san.castle == CastleQueenside {
		between = []int{1, 2, 3}
	}
	for _, f := range between {
		if pos.At(f, rank) != 0 {
			return Move{}, fmt.Errorf("%q: %w", notation, ErrCastlingBlocked)
		}
	}

	// The king may not castle out of, through, or into an attacked square.
	opponent := core.OppositeColor(mover)
	step := sign(kingTo - 4)
	for f := 4; f != kingTo+step; f += step {
		if IsSquareAttacked(pos, f, rank, opponent) {
			return Move{}, fmt.Errorf("%q: %w", notation, ErrCastlingThrough)
		}
	}

	return Move{
		Piece:    'K',
		FromFile: 4,
		FromRank: rank,
		ToFile:   kingTo,
		ToRank:   rank,
		Castle:   san.castle,
		SAN:      notation,
	}, nil
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
