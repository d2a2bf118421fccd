// FILE: internal/prompt/extract_test.go
package prompt

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMove string
		wantOK   bool
	}{
		{
			name:     "canonical move line",
			content:  "MOVE: e4",
			wantMove: "e4",
			wantOK:   true,
		},
		{
			name:     "move line with commentary",
			content:  "I will take the center.\nMOVE: e4\nA classical choice.",
			wantMove: "e4",
			wantOK:   true,
		},
		{
			name:     "lowercase label",
			content:  "move: Nf3",
			wantMove: "Nf3",
			wantOK:   true,
		},
		{
			name:     "markdown emphasis around the label",
			content:  "**MOVE**: **Qxd5**",
			wantMove: "Qxd5",
			wantOK:   true,
		},
		{
			name:     "equals separator",
			content:  "MOVE = O-O",
			wantMove: "O-O",
			wantOK:   true,
		},
		{
			name:     "bare SAN token fallback",
			content:  "I think the best move here is Nf3 because it develops a piece.",
			wantMove: "Nf3",
			wantOK:   true,
		},
		{
			name:     "coordinate token fallback",
			content:  "Playing e2e4 now.",
			wantMove: "e2e4",
			wantOK:   true,
		},
		{
			name:     "promotion token",
			content:  "MOVE: e8=Q",
			wantMove: "e8=Q",
			wantOK:   true,
		},
		{
			name:     "castle in running text",
			content:  "Time to castle: O-O-O looks safest.",
			wantMove: "O-O-O",
			wantOK:   true,
		},
		{
			name:    "no move at all",
			content: "I resign, this position is hopeless.",
			wantOK:  false,
		},
		{
			name:    "empty reply",
			content: "",
			wantOK:  false,
		},
		{
			name:    "whitespace only",
			content: "   \n\t  ",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, _, ok := Extract(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("Extract() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && move != tt.wantMove {
				t.Errorf("Extract() move = %q, want %q", move, tt.wantMove)
			}
		})
	}
}

func TestExtract_CommentaryKept(t *testing.T) {
	move, commentary, ok := Extract("MOVE: d4\nControlling the center from the flank.")
	if !ok || move != "d4" {
		t.Fatalf("Extract() = %q, %v", move, ok)
	}
	if !strings.Contains(commentary, "Controlling the center") {
		t.Errorf("commentary = %q, want the surrounding text", commentary)
	}
}

func TestExtract_CommentaryBounded(t *testing.T) {
	long := "MOVE: e4\n" + strings.Repeat("very long analysis ", 200)
	_, commentary, ok := Extract(long)
	if !ok {
		t.Fatal("Extract() failed on a long reply")
	}
	if len(commentary) > 500 {
		t.Errorf("commentary length = %d, want at most 500", len(commentary))
	}
}
