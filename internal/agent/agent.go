// FILE: internal/agent/agent.go

// Package agent abstracts the external text-generation services that play
// the two sides. The orchestrator only sees free text and a cancelable
// context; everything provider-specific lives here.
package agent

import (
	"context"
	"fmt"

	"llmchess/internal/core"
)

// Agent produces a free-text move proposal for a prompt. RequestMove must
// honor ctx cancellation: an aborted call returns ctx.Err() promptly.
type Agent interface {
	ID() string
	Name() string
	RequestMove(ctx context.Context, prompt string) (string, error)
}

// Registry maps each side to its agent. It is built once at match creation
// and passed into the orchestrator's constructor; there is no ambient
// global registration.
type Registry map[core.Color]Agent

// New constructs an agent from an API configuration.
func New(cfg core.AgentConfig, side core.Color) (Agent, error) {
	switch cfg.Kind {
	case "openai":
		return NewOpenAI(cfg, side)
	case "script":
		return NewScript(cfg, side)
	default:
		return nil, fmt.Errorf("unknown agent kind %q", cfg.Kind)
	}
}

// NewRegistry builds the two-sided registry for a match.
func NewRegistry(white, black core.AgentConfig) (Registry, error) {
	w, err := New(white, core.ColorWhite)
	if err != nil {
		return nil, fmt.Errorf("white agent: %w", err)
	}
	b, err := New(black, core.ColorBlack)
	if err != nil {
		return nil, fmt.Errorf("black agent: %w", err)
	}
	return Registry{core.ColorWhite: w, core.ColorBlack: b}, nil
}
