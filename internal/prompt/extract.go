// FILE: internal/prompt/extract.go
package prompt

import (
	"regexp"
	"strings"
)

// moveLine matches the requested "MOVE: Nf3" reply format, case-insensitive,
// tolerating markdown emphasis around the token.
var moveLine = regexp.MustCompile(`(?im)^\s*\**move\**\s*[:=]\s*\**([0-9a-hKQRBNOx=+#-]+)\**\s*$`)

// sanToken matches a bare SAN-like or coordinate token inside running text.
var sanToken = regexp.MustCompile(`\b(O-O-O|O-O|0-0-0|0-0|[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](?:=?[QRBNqrbn])?[+#]?|[a-h][1-8][a-h][1-8][qrbn]?)\b`)

// Extract pulls a move token and any trailing commentary out of an agent's
// free-text reply. It prefers the explicit "MOVE:" line; otherwise it falls
// back to the first SAN-looking token in the text. ok is false when no token
// can be found at all (a hallucination by definition).
func Extract(content string) (move, commentary string, ok bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", false
	}

	if loc := moveLine.FindStringSubmatchIndex(content); loc != nil {
		move = content[loc[2]:loc[3]]
		commentary = collapse(content[:loc[0]] + " " + content[loc[1]:])
		return move, commentary, true
	}

	if loc := sanToken.FindStringIndex(content); loc != nil {
		move = content[loc[0]:loc[1]]
		commentary = collapse(content[:loc[0]] + " " + content[loc[1]:])
		return move, commentary, true
	}

	return "", "", false
}

// collapse trims the leftover text around an extracted token into a single
// commentary line, bounded so a rambling reply cannot flood the move log.
func collapse(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const maxCommentary = 500
	if len(s) > maxCommentary {
		s = s[:maxCommentary]
	}
	return s
}
