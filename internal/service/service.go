// FILE: internal/service/service.go

// Package service hosts the match registry: construction of agents and
// orchestrators from API requests, lookup by id, and the persistence fan-out.
package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"llmchess/internal/agent"
	"llmchess/internal/board"
	"llmchess/internal/core"
	"llmchess/internal/match"
	"llmchess/internal/orchestrator"
	"llmchess/internal/prompt"
	"llmchess/internal/storage"
)

type Service struct {
	mu       sync.RWMutex
	matches  map[string]*orchestrator.Orchestrator
	store    *storage.Store // nil if persistence disabled
	defaults orchestrator.Config
	log      *logrus.Logger
}

// New creates a new service instance with optional storage
func New(store *storage.Store, defaults orchestrator.Config, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		matches:  make(map[string]*orchestrator.Orchestrator),
		store:    store,
		defaults: defaults,
		log:      log,
	}
}

// CreateMatch builds the agents and orchestrator for a new match and
// registers it. Returns the match id.
func (s *Service) CreateMatch(req core.CreateMatchRequest) (string, error) {
	initial := board.Initial()
	if req.FEN != "" {
		pos, err := board.ParseFEN(req.FEN)
		if err != nil {
			return "", fmt.Errorf("initial position: %w", err)
		}
		initial = pos
	}

	registry, err := agent.NewRegistry(req.White, req.Black)
	if err != nil {
		return "", err
	}

	cfg := s.defaults
	if req.TurnDelayMs > 0 {
		cfg.TurnDelay = time.Duration(req.TurnDelayMs) * time.Millisecond
	}
	if req.HallucinationLimit > 0 {
		cfg.HallucinationLimit = req.HallucinationLimit
	}
	if req.DisableAutoPromote {
		cfg.AutoQueenPromotion = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateMatchIDLocked()
	m := match.New(id, initial)
	s.matches[id] = orchestrator.New(m, registry, prompt.SANBuilder{}, s, cfg, logrus.NewEntry(s.log))

	if s.store != nil {
		s.store.RecordNewMatch(storage.MatchRecord{
			MatchID:      id,
			InitialFEN:   initial.FEN(),
			WhiteAgentID: registry[core.ColorWhite].ID(),
			WhiteName:    registry[core.ColorWhite].Name(),
			BlackAgentID: registry[core.ColorBlack].ID(),
			BlackName:    registry[core.ColorBlack].Name(),
			StartTimeUTC: time.Now().UTC(),
		})
	}

	return id, nil
}

// GetMatch retrieves a match orchestrator by ID
func (s *Service) GetMatch(matchID string) (*orchestrator.Orchestrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("match not found: %s", matchID)
	}
	return o, nil
}

// ListMatches returns the telemetry view of every hosted match.
func (s *Service) ListMatches() []core.MatchResponse {
	s.mu.RLock()
	orchestrators := make([]*orchestrator.Orchestrator, 0, len(s.matches))
	for _, o := range s.matches {
		orchestrators = append(orchestrators, o)
	}
	s.mu.RUnlock()

	responses := make([]core.MatchResponse, 0, len(orchestrators))
	for _, o := range orchestrators {
		responses = append(responses, o.Response())
	}
	return responses
}

// DeleteMatch stops and removes a match from memory
func (s *Service) DeleteMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.matches[matchID]
	if !ok {
		return fmt.Errorf("match not found: %s", matchID)
	}

	// Stop automatic play before dropping the reference.
	if o.Status() == core.StatusRunning {
		o.Pause()
	}

	delete(s.matches, matchID)
	return nil
}

// generateMatchIDLocked creates a new unique match ID
func (s *Service) generateMatchIDLocked() string {
	for {
		id := uuid.New().String()
		if _, exists := s.matches[id]; !exists {
			return id
		}
	}
}

// Recorder implementation: the orchestrators fan their persistence events
// through the service so a disabled store is a single nil check here.

func (s *Service) RecordMove(matchID string, entry core.MoveEntry) {
	if s.store == nil {
		return
	}
	s.store.RecordMove(storage.MoveRecord{
		MatchID:      matchID,
		MoveNumber:   entry.Number,
		MoveSAN:      entry.Move,
		FENAfterMove: entry.FEN,
		Side:         entry.Side,
		Commentary:   entry.Commentary,
		Forced:       entry.Forced,
		MoveTimeUTC:  time.Now().UTC(),
	})
}

func (s *Service) RecordHallucination(matchID string, side core.Color, attempt int, reason, raw string) {
	if s.store == nil {
		return
	}
	s.store.RecordHallucination(storage.HallucinationRecord{
		MatchID:      matchID,
		Side:         side.String(),
		Attempt:      attempt,
		Reason:       reason,
		RawText:      raw,
		EventTimeUTC: time.Now().UTC(),
	})
}

func (s *Service) RecordResult(matchID string, result core.MatchResult) {
	if s.store == nil {
		return
	}
	s.store.RecordResult(storage.ResultRecord{
		MatchID:    matchID,
		Outcome:    result.Outcome.String(),
		Reason:     result.Reason.String(),
		EndTimeUTC: time.Now().UTC(),
	})
}

// ErrStorageDisabled reports a history request against a server running
// without persistence.
var ErrStorageDisabled = fmt.Errorf("persistence is disabled")

// GetHistory reads a match's persisted audit trail. It queries storage
// directly, so history survives DeleteMatch.
func (s *Service) GetHistory(matchID string) (core.HistoryResponse, error) {
	if s.store == nil {
		return core.HistoryResponse{}, ErrStorageDisabled
	}

	moves, err := s.store.QueryMoves(matchID)
	if err != nil {
		return core.HistoryResponse{}, err
	}
	events, err := s.store.QueryHallucinations(matchID)
	if err != nil {
		return core.HistoryResponse{}, err
	}

	resp := core.HistoryResponse{MatchID: matchID}
	for _, m := range moves {
		resp.Moves = append(resp.Moves, core.HistoryMove{
			Number:     m.MoveNumber,
			Side:       m.Side,
			Move:       m.MoveSAN,
			FEN:        m.FENAfterMove,
			Commentary: m.Commentary,
			Forced:     m.Forced,
			PlayedAt:   m.MoveTimeUTC,
		})
	}
	for _, h := range events {
		resp.Rejects = append(resp.Rejects, core.HistoryReject{
			Side:       h.Side,
			Attempt:    h.Attempt,
			Reason:     h.Reason,
			RawText:    h.RawText,
			RejectedAt: h.EventTimeUTC,
		})
	}
	return resp, nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close stops every match and the storage layer.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.matches {
		if o.Status() == core.StatusRunning {
			o.Pause()
		}
	}
	s.matches = make(map[string]*orchestrator.Orchestrator)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
