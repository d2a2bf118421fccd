// FILE: internal/agent/script.go
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"llmchess/internal/core"
)

// Script replays a fixed move list. Used by tests and for offline dry runs
// of the orchestration loop without any network backend.
type Script struct {
	id    string
	name  string
	mu    sync.Mutex
	moves []string
	next  int
}

func NewScript(cfg core.AgentConfig, side core.Color) (*Script, error) {
	if len(cfg.Script) == 0 {
		return nil, fmt.Errorf("script agent requires a move list")
	}
	name := cfg.Nickname
	if name == "" {
		name = "script (" + side.Name() + ")"
	}
	return &Script{
		id:    uuid.New().String(),
		name:  name,
		moves: cfg.Script,
	}, nil
}

func (s *Script) ID() string { return s.id }

func (s *Script) Name() string { return s.name }

func (s *Script) RequestMove(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.moves) {
		return "", fmt.Errorf("script exhausted after %d moves", len(s.moves))
	}
	move := s.moves[s.next]
	s.next++
	return "MOVE: " + move, nil
}
