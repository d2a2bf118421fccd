// FILE: internal/prompt/prompt_test.go
package prompt

import (
	"strings"
	"testing"

	"llmchess/internal/board"
	"llmchess/internal/core"
)

func TestBuildPrompt(t *testing.T) {
	pos := board.Initial()
	history := []core.MoveEntry{
		{Number: 1, Side: "w", Move: "e4"},
		{Number: 1, Side: "b", Move: "e5"},
	}

	got := SANBuilder{}.BuildPrompt(pos, core.ColorWhite, history)

	for _, want := range []string{
		"playing chess as white",
		board.StartingFEN,
		"Moves so far: 1. e4 e5",
		"MOVE: <notation>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildPromptOmitsEmptyHistory(t *testing.T) {
	got := SANBuilder{}.BuildPrompt(board.Initial(), core.ColorBlack, nil)
	if strings.Contains(got, "Moves so far") {
		t.Errorf("prompt mentions history for a fresh match:\n%s", got)
	}
	if !strings.Contains(got, "playing chess as black") {
		t.Errorf("prompt does not address black:\n%s", got)
	}
}

func TestBuildCorrectionPrompt(t *testing.T) {
	pos := board.Initial()
	got := SANBuilder{}.BuildCorrectionPrompt(pos, core.ColorWhite, "Ke4", "no piece can make that move")

	for _, want := range []string{
		`"Ke4"`,
		"rejected",
		"no piece can make that move",
		board.StartingFEN,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("correction prompt missing %q:\n%s", want, got)
		}
	}
}

func TestFormatMoveList(t *testing.T) {
	tests := []struct {
		name    string
		history []core.MoveEntry
		want    string
	}{
		{"empty", nil, ""},
		{"white only", []core.MoveEntry{{Move: "e4"}}, "1. e4"},
		{
			"full pairs",
			[]core.MoveEntry{{Move: "e4"}, {Move: "e5"}, {Move: "Nf3"}, {Move: "Nc6"}},
			"1. e4 e5 2. Nf3 Nc6",
		},
		{
			"trailing white move",
			[]core.MoveEntry{{Move: "e4"}, {Move: "e5"}, {Move: "Nf3"}},
			"1. e4 e5 2. Nf3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoveList(tt.history); got != tt.want {
				t.Errorf("FormatMoveList() = %q, want %q", got, tt.want)
			}
		})
	}
}
