// FILE: internal/prompt/prompt.go

// Package prompt builds the text sent to the agents and extracts move
// proposals from their free-text replies.
package prompt

import (
	"fmt"
	"strings"

	"llmchess/internal/board"
	"llmchess/internal/core"
)

// Builder produces the per-turn prompt text. The orchestrator consumes it as
// an opaque string-producing collaborator.
type Builder interface {
	BuildPrompt(pos board.Position, side core.Color, history []core.MoveEntry) string
	BuildCorrectionPrompt(pos board.Position, side core.Color, rejected, reason string) string
}

// SANBuilder is the default Builder: a compact instruction block with the
// current FEN, the move list, and a fixed reply format the extractor knows.
type SANBuilder struct{}

func (SANBuilder) BuildPrompt(pos board.Position, side core.Color, history []core.MoveEntry) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are playing chess as %s.\n", side.Name())
	fmt.Fprintf(&sb, "Current position (FEN): %s\n", pos.FEN())

	if len(history) > 0 {
		sb.WriteString("Moves so far: ")
		sb.WriteString(FormatMoveList(history))
		sb.WriteByte('\n')
	}

	sb.WriteString("\nReply with exactly one legal move for ")
	sb.WriteString(side.Name())
	sb.WriteString(" in standard algebraic notation on a line of the form:\n")
	sb.WriteString("MOVE: <notation>\n")
	sb.WriteString("You may add one short line of commentary after the move line.\n")

	return sb.String()
}

func (SANBuilder) BuildCorrectionPrompt(pos board.Position, side core.Color, rejected, reason string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Your move %q was rejected: %s.\n", rejected, reason)
	fmt.Fprintf(&sb, "The position is unchanged (FEN): %s\n", pos.FEN())
	sb.WriteString("Reply with a different legal move for ")
	sb.WriteString(side.Name())
	sb.WriteString(" as:\nMOVE: <notation>\n")

	return sb.String()
}

// FormatMoveList renders "1. e4 e5 2. Nf3 ..." from the telemetry entries.
func FormatMoveList(history []core.MoveEntry) string {
	var sb strings.Builder
	for i, entry := range history {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d. %s", i/2+1, entry.Move)
		} else {
			sb.WriteByte(' ')
			sb.WriteString(entry.Move)
		}
	}
	return sb.String()
}
