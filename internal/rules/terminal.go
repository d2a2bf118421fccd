// FILE: internal/rules/terminal.go
package rules

import (
	"llmchess/internal/board"
	"llmchess/internal/core"
)

// Terminal evaluates whether a position ends the match. history is the
// sequence of repetition keys for every position reached so far, including
// the current one; it is only consulted for threefold repetition.
//
// Conditions are evaluated in a fixed precedence: checkmate, stalemate,
// insufficient material, threefold repetition, fifty-move rule. Checkmate and
// stalemate come first because they are unconditionally terminal.
func Terminal(pos board.Position, history []string) (core.MatchResult, bool) {
	mover := pos.Turn()

	if !HasLegalMoves(pos) {
		if IsInCheck(pos, mover) {
			outcome := core.OutcomeWhiteWins
			if mover == core.ColorWhite {
				outcome = core.OutcomeBlackWins
			}
			return core.MatchResult{Outcome: outcome, Reason: core.ReasonCheckmate}, true
		}
		return core.MatchResult{Outcome: core.OutcomeDraw, Reason: core.ReasonStalemate}, true
	}

	if HasInsufficientMaterial(pos) {
		return core.MatchResult{Outcome: core.OutcomeDraw, Reason: core.ReasonInsufficientMaterial}, true
	}

	key := pos.RepetitionKey()
	count := 0
	for _, k := range history {
		if k == key {
			count++
		}
	}
	if count >= 3 {
		return core.MatchResult{Outcome: core.OutcomeDraw, Reason: core.ReasonThreefoldRepetition}, true
	}

	if pos.HalfmoveClock() >= 100 {
		return core.MatchResult{Outcome: core.OutcomeDraw, Reason: core.ReasonFiftyMoveRule}, true
	}

	return core.MatchResult{}, false
}

// HasInsufficientMaterial reports whether neither side can deliver mate:
// K vs K, K plus a single minor vs K, or a single bishop each with both
// bishops on same-colored squares.
func HasInsufficientMaterial(pos board.Position) bool {
	var whiteMinors, blackMinors []byte
	var whiteBishopLight, blackBishopLight bool

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			piece := pos.At(f, r)
			if piece == 0 {
				continue
			}
			kind := board.PieceKind(piece)
			if kind == 'K' {
				continue
			}
			if kind == 'P' || kind == 'R' || kind == 'Q' {
				return false
			}
			light := (f+r)%2 == 1
			if board.PieceColor(piece) == core.ColorWhite {
				whiteMinors = append(whiteMinors, kind)
				if kind == 'B' {
					whiteBishopLight = light
				}
			} else {
				blackMinors = append(blackMinors, kind)
				if kind == 'B' {
					blackBishopLight = light
				}
			}
		}
	}

	switch {
	case len(whiteMinors) == 0 && len(blackMinors) == 0:
		return true
	case len(whiteMinors) == 1 && len(blackMinors) == 0:
		return true
	case len(whiteMinors) == 0 && len(blackMinors) == 1:
		return true
	case len(whiteMinors) == 1 && len(blackMinors) == 1:
		return whiteMinors[0] == 'B' && blackMinors[0] == 'B' &&
			whiteBishopLight == blackBishopLight
	}
	return false
}
