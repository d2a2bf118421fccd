// FILE: internal/core/api.go
package core

import "time"

// Request types

// AgentConfig describes one side's text-generation backend.
type AgentConfig struct {
	Kind     string   `json:"kind" validate:"required,oneof=openai script"`
	Model    string   `json:"model,omitempty" validate:"omitempty,max=128"`
	BaseURL  string   `json:"baseUrl,omitempty" validate:"omitempty,url,max=256"`
	APIKey   string   `json:"apiKey,omitempty" validate:"omitempty,max=256"`
	Script   []string `json:"script,omitempty" validate:"omitempty,max=600,dive,max=16"`
	Timeout  int      `json:"timeoutMs,omitempty" validate:"omitempty,min=1000,max=300000"`
	Nickname string   `json:"nickname,omitempty" validate:"omitempty,max=40"`
}

type CreateMatchRequest struct {
	White AgentConfig `json:"white" validate:"required"`
	Black AgentConfig `json:"black" validate:"required"`
	FEN   string      `json:"fen,omitempty" validate:"omitempty,max=100"`

	// Orchestration knobs; zero values fall back to server defaults.
	TurnDelayMs        int `json:"turnDelayMs,omitempty" validate:"omitempty,min=0,max=60000"`
	HallucinationLimit int `json:"hallucinationLimit,omitempty" validate:"omitempty,min=1,max=10"`

	// Queen promotion is assumed for bare last-rank pawn pushes unless disabled.
	DisableAutoPromote bool `json:"disableAutoPromote,omitempty"`
}

type ForceMoveRequest struct {
	Move string `json:"move" validate:"required,min=2,max=10"`
	Side string `json:"side" validate:"required,oneof=w b white black"`
}

type OverridePromptRequest struct {
	Text string `json:"text" validate:"required,min=1,max=8192"`
}

type SetPositionRequest struct {
	FEN string `json:"fen" validate:"required,min=15,max=100"`
}

type AdjudicateRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=white_wins black_wins draw"`
}

// Response types

type MoveEntry struct {
	Number     int    `json:"number"`
	Side       string `json:"side"` // "w" or "b"
	Move       string `json:"move"`
	Commentary string `json:"commentary,omitempty"`
	Forced     bool   `json:"forced,omitempty"`
	FEN        string `json:"fen"`
}

type MatchResponse struct {
	MatchID    string       `json:"matchId"`
	FEN        string       `json:"fen"`
	Turn       string       `json:"turn"`   // "w" or "b"
	Status     string       `json:"status"` // "idle", "running", etc
	Result     *MatchResult `json:"result,omitempty"`
	Moves      []MoveEntry  `json:"moves"`
	White      AgentInfo    `json:"white"`
	Black      AgentInfo    `json:"black"`
	LastReject *RejectInfo  `json:"lastReject,omitempty"`
}

// AgentInfo is the telemetry view of one side's agent.
type AgentInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Hallucinations int    `json:"hallucinations"` // consecutive invalid attempts
}

// RejectInfo surfaces the most recent rejected proposal for operator visibility.
type RejectInfo struct {
	Side   string `json:"side"`
	Move   string `json:"move"`
	Reason string `json:"reason"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

// HistoryResponse is the persisted audit trail of a match: every applied
// move and every rejected proposal, read back from storage. It can outlive
// the in-memory match.
type HistoryResponse struct {
	MatchID string          `json:"matchId"`
	Moves   []HistoryMove   `json:"moves"`
	Rejects []HistoryReject `json:"rejects"`
}

type HistoryMove struct {
	Number     int       `json:"number"`
	Side       string    `json:"side"`
	Move       string    `json:"move"`
	FEN        string    `json:"fen"`
	Commentary string    `json:"commentary,omitempty"`
	Forced     bool      `json:"forced,omitempty"`
	PlayedAt   time.Time `json:"playedAt"`
}

type HistoryReject struct {
	Side       string    `json:"side"`
	Attempt    int       `json:"attempt"`
	Reason     string    `json:"reason"`
	RawText    string    `json:"rawText"`
	RejectedAt time.Time `json:"rejectedAt"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
