// FILE: internal/rules/move.go

// Package rules implements chess move legality. Every function takes an
// explicit board.Position and returns a verdict or a new Position; the
// package holds no mutable state between calls.
package rules

import "errors"

// Rejection reasons. The orchestrator surfaces these verbatim in corrective
// prompts, so the messages are written for the offending agent to read.
var (
	ErrUnparsable        = errors.New("move notation could not be parsed")
	ErrNoPiece           = errors.New("no piece of that kind can legally reach the destination")
	ErrAmbiguous         = errors.New("disambiguation does not resolve to a single piece")
	ErrOwnPiece          = errors.New("destination is occupied by your own piece")
	ErrCaptureOnEmpty    = errors.New("capture marker given but the destination square is empty")
	ErrLeavesKingInCheck = errors.New("move would leave your own king in check")
	ErrPromotionRequired = errors.New("pawn reaches the last rank: promotion piece required (e.g. e8=Q)")
	ErrCastlingRights    = errors.New("castling rights for that side are gone")
	ErrCastlingBlocked   = errors.New("castling path is blocked")
	ErrCastlingThrough   = errors.New("cannot castle out of, through, or into check")
)

type CastleSide int

const (
	CastleNone CastleSide = iota
	CastleKingside
	CastleQueenside
)

// Move is a fully resolved, validated move. It is a value object: it never
// mutates a Position directly, Apply produces a new Position from it.
type Move struct {
	Piece     byte // colorless kind: 'P', 'N', 'B', 'R', 'Q', 'K'
	FromFile  int
	FromRank  int
	ToFile    int
	ToRank    int
	Capture   bool
	EnPassant bool
	Castle    CastleSide
	Promotion byte // 0, or 'Q', 'R', 'B', 'N'
	SAN       string
}

// Coord returns the move in long coordinate form such as "e2e4" or "e7e8q".
func (m Move) Coord() string {
	s := []byte{
		byte('a' + m.FromFile), byte('1' + m.FromRank),
		byte('a' + m.ToFile), byte('1' + m.ToRank),
	}
	if m.Promotion != 0 {
		s = append(s, m.Promotion-'A'+'a')
	}
	return string(s)
}
