// FILE: internal/client/display/format.go
package display

import (
	"encoding/json"
	"fmt"
	"strings"

	"llmchess/internal/core"
)

// PrettyPrintJSON prints formatted JSON
func PrettyPrintJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Println(string(data))
}

// PrintMatchSummary renders the telemetry view of a match for the console.
func PrintMatchSummary(m *core.MatchResponse) {
	fmt.Printf("%sMatch:%s %s\n", Cyan, Reset, m.MatchID)
	fmt.Printf("%sStatus:%s %s", Cyan, Reset, colorForStatus(m.Status))
	if m.Result != nil {
		fmt.Printf("  (%s by %s)", m.Result.Outcome, m.Result.Reason)
	}
	fmt.Println()
	fmt.Printf("%sTurn:%s %s\n", Cyan, Reset, ColorForTurn(m.Turn))
	fmt.Printf("%sWhite:%s %s", Blue, Reset, m.White.Name)
	if m.White.Hallucinations > 0 {
		fmt.Printf("  %s(%d consecutive invalid)%s", Yellow, m.White.Hallucinations, Reset)
	}
	fmt.Println()
	fmt.Printf("%sBlack:%s %s", Red, Reset, m.Black.Name)
	if m.Black.Hallucinations > 0 {
		fmt.Printf("  %s(%d consecutive invalid)%s", Yellow, m.Black.Hallucinations, Reset)
	}
	fmt.Println()
	if m.LastReject != nil {
		fmt.Printf("%sLast reject:%s %s by %s: %s\n",
			Yellow, Reset, m.LastReject.Move, m.LastReject.Side, m.LastReject.Reason)
	}
	if line := FormatMoveLine(m.Moves); line != "" {
		fmt.Printf("%sMoves:%s %s\n", Cyan, Reset, line)
	}
}

// FormatMoveLine renders the move list in numbered pairs, "1. e4 e5 2. Nf3".
func FormatMoveLine(moves []core.MoveEntry) string {
	var sb strings.Builder
	for _, mv := range moves {
		if mv.Side == "w" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d. %s", mv.Number, mv.Move)
		} else {
			if sb.Len() == 0 {
				fmt.Fprintf(&sb, "%d... %s", mv.Number, mv.Move)
			} else {
				sb.WriteByte(' ')
				sb.WriteString(mv.Move)
			}
		}
	}
	return sb.String()
}

func colorForStatus(status string) string {
	switch status {
	case "running":
		return Green + status + Reset
	case "waiting_for_director", "error":
		return Red + status + Reset
	case "paused":
		return Yellow + status + Reset
	case "game_over":
		return Magenta + status + Reset
	default:
		return status
	}
}
