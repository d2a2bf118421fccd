// FILE: internal/rules/terminal_test.go
package rules

import (
	"testing"

	"llmchess/internal/board"
	"llmchess/internal/core"
)

func TestTerminal_FoolsMate(t *testing.T) {
	pos := board.Initial()
	history := []string{pos.RepetitionKey()}

	for _, notation := range []string{"f3", "e5", "g4"} {
		pos = applySAN(t, pos, notation)
		history = append(history, pos.RepetitionKey())
		if _, over := Terminal(pos, history); over {
			t.Fatalf("terminal too early after %s", notation)
		}
	}

	pos = applySAN(t, pos, "Qh4")
	history = append(history, pos.RepetitionKey())

	result, over := Terminal(pos, history)
	if !over {
		t.Fatal("Qh4 mate not detected")
	}
	if result.Outcome != core.OutcomeBlackWins || result.Reason != core.ReasonCheckmate {
		t.Errorf("result = %+v, want black wins by checkmate", result)
	}
}

func TestTerminal_DirectPositions(t *testing.T) {
	tests := []struct {
		name        string
		fen         string
		wantOver    bool
		wantOutcome core.Outcome
		wantReason  core.ResultReason
	}{
		{
			name:        "back-corner mate",
			fen:         "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1",
			wantOver:    true,
			wantOutcome: core.OutcomeWhiteWins,
			wantReason:  core.ReasonCheckmate,
		},
		{
			name:        "stalemate",
			fen:         "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			wantOver:    true,
			wantOutcome: core.OutcomeDraw,
			wantReason:  core.ReasonStalemate,
		},
		{
			name:        "bare kings",
			fen:         "8/8/4k3/8/8/3K4/8/8 w - - 0 1",
			wantOver:    true,
			wantOutcome: core.OutcomeDraw,
			wantReason:  core.ReasonInsufficientMaterial,
		},
		{
			name:        "king and knight vs king",
			fen:         "8/8/4k3/8/8/3K4/3N4/8 b - - 0 1",
			wantOver:    true,
			wantOutcome: core.OutcomeDraw,
			wantReason:  core.ReasonInsufficientMaterial,
		},
		{
			name:     "king and rook vs king is not insufficient",
			fen:      "8/8/4k3/8/8/3K4/3R4/8 b - - 0 1",
			wantOver: false,
		},
		{
			name:     "king and pawn vs king is not insufficient",
			fen:      "8/8/4k3/8/8/3K4/3P4/8 b - - 0 1",
			wantOver: false,
		},
		{
			name:        "fifty-move rule at a halfmove clock of 100",
			fen:         "7k/8/8/8/8/8/Q7/K7 b - - 100 80",
			wantOver:    true,
			wantOutcome: core.OutcomeDraw,
			wantReason:  core.ReasonFiftyMoveRule,
		},
		{
			name:     "halfmove clock just under the limit",
			fen:      "7k/8/8/8/8/8/Q7/K7 b - - 99 80",
			wantOver: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			result, over := Terminal(pos, []string{pos.RepetitionKey()})
			if over != tt.wantOver {
				t.Fatalf("Terminal() over = %v, want %v (result %+v)", over, tt.wantOver, result)
			}
			if !over {
				return
			}
			if result.Outcome != tt.wantOutcome || result.Reason != tt.wantReason {
				t.Errorf("result = %+v, want {%v %v}", result, tt.wantOutcome, tt.wantReason)
			}
		})
	}
}

func TestTerminal_ThreefoldRepetition(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 10 30")
	key := pos.RepetitionKey()

	if _, over := Terminal(pos, []string{key, key}); over {
		t.Fatal("two occurrences should not be terminal")
	}

	result, over := Terminal(pos, []string{key, key, key})
	if !over {
		t.Fatal("third occurrence not detected")
	}
	if result.Reason != core.ReasonThreefoldRepetition || result.Outcome != core.OutcomeDraw {
		t.Errorf("result = %+v, want draw by threefold repetition", result)
	}
}

func TestHasInsufficientMaterial_Bishops(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{
			// c1 and f8 are both dark squares.
			name: "same-colored bishops",
			fen:  "5b1k/8/8/8/8/8/8/2B4K w - - 0 1",
			want: true,
		},
		{
			// c1 is dark, e8 is light.
			name: "opposite-colored bishops",
			fen:  "4b2k/8/8/8/8/8/8/2B4K w - - 0 1",
			want: false,
		},
		{
			name: "two knights on one side",
			fen:  "7k/8/8/8/8/8/8/1NN4K w - - 0 1",
			want: false,
		},
		{
			name: "knight against bishop",
			fen:  "4b2k/8/8/8/8/8/8/1N5K w - - 0 1",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			if got := HasInsufficientMaterial(pos); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}
