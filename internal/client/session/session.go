// FILE: internal/client/session/session.go

// Package session holds the mutable state of one director console run.
package session

import (
	"llmchess/internal/client/api"
	"llmchess/internal/core"
)

type Session struct {
	APIBaseURL   string
	Client       *api.Client
	Verbose      bool
	CurrentMatch string

	// LastState caches the most recent match response for the prompt line.
	LastState *core.MatchResponse
}

// Track remembers the match the console is focused on.
func (s *Session) Track(m *core.MatchResponse) {
	if m == nil {
		return
	}
	s.CurrentMatch = m.MatchID
	s.LastState = m
}

// Forget clears the focused match, after deletion or on demand.
func (s *Session) Forget() {
	s.CurrentMatch = ""
	s.LastState = nil
}
