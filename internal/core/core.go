// FILE: internal/core/core.go
package core

// MatchStatus is owned exclusively by the orchestrator state machine.
type MatchStatus int

const (
	StatusIdle MatchStatus = iota
	StatusRunning
	StatusPaused
	StatusWaitingForDirector
	StatusError
	StatusGameOver
)

func (s MatchStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusWaitingForDirector:
		return "waiting_for_director"
	case StatusError:
		return "error"
	case StatusGameOver:
		return "game_over"
	default:
		return "idle"
	}
}

type Outcome int

const (
	OutcomeWhiteWins Outcome = iota + 1
	OutcomeBlackWins
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWhiteWins:
		return "white_wins"
	case OutcomeBlackWins:
		return "black_wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

// ParseOutcome maps the API spelling back to an Outcome.
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case "white_wins":
		return OutcomeWhiteWins, true
	case "black_wins":
		return OutcomeBlackWins, true
	case "draw":
		return OutcomeDraw, true
	}
	return 0, false
}

// ResultReason explains why a match ended.
type ResultReason int

const (
	ReasonCheckmate ResultReason = iota + 1
	ReasonStalemate
	ReasonInsufficientMaterial
	ReasonThreefoldRepetition
	ReasonFiftyMoveRule
	ReasonDirectorDecision
)

func (r ResultReason) String() string {
	switch r {
	case ReasonCheckmate:
		return "checkmate"
	case ReasonStalemate:
		return "stalemate"
	case ReasonInsufficientMaterial:
		return "insufficient_material"
	case ReasonThreefoldRepetition:
		return "threefold_repetition"
	case ReasonFiftyMoveRule:
		return "fifty_move_rule"
	case ReasonDirectorDecision:
		return "director_decision"
	default:
		return "unknown"
	}
}

func (r ResultReason) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// MatchResult is present only once a match reaches StatusGameOver.
type MatchResult struct {
	Outcome Outcome      `json:"outcome"`
	Reason  ResultReason `json:"reason"`
}

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	if c == ColorWhite {
		return "w"
	}
	return "b"
}

func (c Color) Name() string {
	if c == ColorWhite {
		return "white"
	}
	return "black"
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// ParseColor accepts both the short and long forms used over the API.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "white":
		return ColorWhite, true
	case "b", "black":
		return ColorBlack, true
	}
	return 0, false
}
