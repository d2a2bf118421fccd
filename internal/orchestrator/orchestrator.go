// FILE: internal/orchestrator/orchestrator.go

// Package orchestrator drives a refereed match between two external agents.
// It owns MatchStatus, the canonical Position history, and the hallucination
// counters; the rules package is consulted statelessly per call. Exactly one
// turn is in flight at any instant, guarded by a generation counter so that
// a canceled turn's late agent response can never mutate the match.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"llmchess/internal/agent"
	"llmchess/internal/board"
	"llmchess/internal/core"
	"llmchess/internal/match"
	"llmchess/internal/prompt"
	"llmchess/internal/rules"
)

var (
	ErrBadTransition = errors.New("action not permitted in current match status")
	ErrWrongSide     = errors.New("it is not that side's turn")
)

// Config bounds the recovery protocol and paces the match.
type Config struct {
	// TurnDelay separates consecutive turns; the wait is cancelable.
	TurnDelay time.Duration

	// HallucinationLimit is the consecutive-invalid-move ceiling per agent.
	HallucinationLimit int

	// AutoQueenPromotion retries a bare last-rank pawn push as a queen
	// promotion instead of rejecting it. Documented convenience, on by
	// default; the engine itself always requires an explicit piece.
	AutoQueenPromotion bool
}

func DefaultConfig() Config {
	return Config{
		TurnDelay:          2 * time.Second,
		HallucinationLimit: 3,
		AutoQueenPromotion: true,
	}
}

// Recorder receives persistence events. Implementations must not call back
// into the orchestrator. A nil Recorder disables persistence.
type Recorder interface {
	RecordMove(matchID string, entry core.MoveEntry)
	RecordHallucination(matchID string, side core.Color, attempt int, reason, raw string)
	RecordResult(matchID string, result core.MatchResult)
}

type Orchestrator struct {
	cfg     Config
	agents  agent.Registry
	prompts prompt.Builder
	rec     Recorder
	log     *logrus.Entry

	mu         sync.Mutex
	m          *match.Match
	status     core.MatchStatus
	result     *core.MatchResult
	inFlight   bool
	generation uint64
	cancelTurn context.CancelFunc
	override   string // one-shot prompt substitution
}

// New wires a match to its agents. The registry is an explicit constructor
// dependency; there is no global agent state.
func New(m *match.Match, agents agent.Registry, prompts prompt.Builder, rec Recorder, cfg Config, log *logrus.Entry) *Orchestrator {
	if cfg.HallucinationLimit < 1 {
		cfg.HallucinationLimit = DefaultConfig().HallucinationLimit
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Orchestrator{
		cfg:     cfg,
		agents:  agents,
		prompts: prompts,
		rec:     rec,
		log:     log.WithField("match", m.ID),
		m:       m,
		status:  core.StatusIdle,
	}
}

// Start begins automatic play from Idle.
func (o *Orchestrator) Start() error {
	o.mu.Lock()
	if o.status != core.StatusIdle {
		o.mu.Unlock()
		return fmt.Errorf("start from %s: %w", o.status, ErrBadTransition)
	}
	o.status = core.StatusRunning
	ctx, gen := o.armTurnLocked()
	o.mu.Unlock()

	o.log.Info("match started")
	go o.runTurn(ctx, gen, 0)
	return nil
}

// Pause suspends play, aborting any outstanding agent request or inter-turn
// delay. A response that arrives after this call cannot mutate the match.
func (o *Orchestrator) Pause() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status != core.StatusRunning {
		return fmt.Errorf("pause from %s: %w", o.status, ErrBadTransition)
	}
	o.interruptLocked()
	o.status = core.StatusPaused
	o.log.Info("match paused")
	return nil
}

// Resume continues play from Paused.
func (o *Orchestrator) Resume() error {
	o.mu.Lock()
	if o.status != core.StatusPaused {
		o.mu.Unlock()
		return fmt.Errorf("resume from %s: %w", o.status, ErrBadTransition)
	}
	o.status = core.StatusRunning
	ctx, gen := o.armTurnLocked()
	o.mu.Unlock()

	o.log.Info("match resumed")
	go o.runTurn(ctx, gen, 0)
	return nil
}

// Reset rewinds to a fresh initial position and Idle status. Permitted from
// every status except Idle itself, so a finished or stuck match can be
// replayed without rebuilding the agents.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status == core.StatusIdle {
		return fmt.Errorf("reset from %s: %w", o.status, ErrBadTransition)
	}
	o.interruptLocked()
	o.m.Reset(board.Initial())
	o.status = core.StatusIdle
	o.result = nil
	o.override = ""
	o.log.Info("match reset")
	return nil
}

func (o *Orchestrator) Status() core.MatchStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *Orchestrator) Result() *core.MatchResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return nil
	}
	r := *o.result
	return &r
}

// Position returns the canonical current position.
func (o *Orchestrator) Position() board.Position {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.m.Current()
}

// Response assembles the full telemetry view of the match.
func (o *Orchestrator) Response() core.MatchResponse {
	o.mu.Lock()
	defer o.mu.Unlock()

	pos := o.m.Current()
	resp := core.MatchResponse{
		MatchID:    o.m.ID,
		FEN:        pos.FEN(),
		Turn:       pos.Turn().String(),
		Status:     o.status.String(),
		Moves:      o.m.Moves(),
		White:      o.agentInfoLocked(core.ColorWhite),
		Black:      o.agentInfoLocked(core.ColorBlack),
		LastReject: o.m.LastReject(),
	}
	if o.result != nil {
		r := *o.result
		resp.Result = &r
	}
	return resp
}

func (o *Orchestrator) agentInfoLocked(side core.Color) core.AgentInfo {
	a := o.agents[side]
	return core.AgentInfo{
		ID:             a.ID(),
		Name:           a.Name(),
		Hallucinations: o.m.Hallucinations(side),
	}
}

// armTurnLocked prepares the cancelation context for the next turn. Callers
// hold the lock and pass the returned generation to runTurn; any interrupt
// bumps the generation so the stale turn discards itself.
func (o *Orchestrator) armTurnLocked() (context.Context, uint64) {
	if o.cancelTurn != nil {
		o.cancelTurn()
	}
	ctx, cancel := context.WithCancel(context.Background())
	o.cancelTurn = cancel
	return ctx, o.generation
}

// interruptLocked aborts the in-flight turn, if any, and invalidates its
// generation.
func (o *Orchestrator) interruptLocked() {
	o.generation++
	if o.cancelTurn != nil {
		o.cancelTurn()
		o.cancelTurn = nil
	}
	o.inFlight = false
}

// runTurn executes one full turn: optional inter-turn delay, terminal check,
// agent request, validation with the bounded hallucination recovery, apply,
// and scheduling of the successor turn.
func (o *Orchestrator) runTurn(ctx context.Context, gen uint64, delay time.Duration) {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}

	o.mu.Lock()
	if o.status != core.StatusRunning || o.generation != gen || o.inFlight {
		o.mu.Unlock()
		return
	}
	o.inFlight = true
	pos := o.m.Current()
	history := o.m.RepetitionHistory()
	moves := o.m.Moves()
	override := o.override
	o.override = ""
	o.mu.Unlock()

	side := pos.Turn()
	ag := o.agents[side]
	log := o.log.WithField("side", side.Name())

	// Never request a move for a finished position.
	if result, over := rules.Terminal(pos, history); over {
		o.finish(gen, result)
		return
	}

	turnPrompt := override
	if turnPrompt == "" {
		turnPrompt = o.prompts.BuildPrompt(pos, side, moves)
	}

	content, err := ag.RequestMove(ctx, turnPrompt)
	if err != nil {
		o.handleAgentError(ctx, gen, log, err)
		return
	}

	mv, commentary, vErr := o.evaluateProposal(pos, content)
	if vErr != nil {
		raw, _, _ := prompt.Extract(content)
		if raw == "" {
			raw = content
		}
		escalate, count := o.recordHallucination(gen, side, raw, vErr)
		if escalate {
			return
		}
		log.WithFields(logrus.Fields{"move": raw, "reason": vErr.Error(), "attempt": count}).
			Warn("move rejected, issuing correction")

		// Exactly one corrective re-request, carrying the rejection reason.
		correction := o.prompts.BuildCorrectionPrompt(pos, side, raw, vErr.Error())
		content, err = ag.RequestMove(ctx, correction)
		if err != nil {
			o.handleAgentError(ctx, gen, log, err)
			return
		}
		mv, commentary, vErr = o.evaluateProposal(pos, content)
		if vErr != nil {
			raw, _, _ = prompt.Extract(content)
			if raw == "" {
				raw = content
			}
			// The corrective response failed too: halt automatic play.
			o.recordHallucination(gen, side, raw, vErr)
			o.escalate(gen, side, vErr)
			return
		}
	}

	o.applyValidated(gen, side, mv, commentary, false)
}

// evaluateProposal extracts a move token from agent free text and validates
// it against the position, applying the queen-promotion convenience when
// configured.
func (o *Orchestrator) evaluateProposal(pos board.Position, content string) (rules.Move, string, error) {
	token, commentary, ok := prompt.Extract(content)
	if !ok {
		return rules.Move{}, "", errors.New("no move token found in reply")
	}

	mv, err := rules.ValidateMove(pos, token)
	if err != nil && o.cfg.AutoQueenPromotion && errors.Is(err, rules.ErrPromotionRequired) {
		mv, err = rules.ValidateMove(pos, rules.WithQueenPromotion(token))
	}
	if err != nil {
		return rules.Move{}, "", err
	}
	return mv, commentary, nil
}

// recordHallucination bumps the agent's counter and, when the ceiling is
// already reached, escalates. Returns escalated=true when the caller must
// stop the turn.
func (o *Orchestrator) recordHallucination(gen uint64, side core.Color, raw string, vErr error) (escalated bool, count int) {
	o.mu.Lock()
	if o.generation != gen || o.status != core.StatusRunning {
		o.mu.Unlock()
		return true, 0
	}
	count = o.m.RecordHallucination(side, raw, vErr.Error())
	o.mu.Unlock()

	if o.rec != nil {
		o.rec.RecordHallucination(o.m.ID, side, count, vErr.Error(), raw)
	}

	if count >= o.cfg.HallucinationLimit {
		o.escalate(gen, side, vErr)
		return true, count
	}
	return false, count
}

// escalate transitions Running -> WaitingForDirector. No further agent calls
// occur until a director action resumes play.
func (o *Orchestrator) escalate(gen uint64, side core.Color, vErr error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.generation != gen || o.status != core.StatusRunning {
		return
	}
	o.inFlight = false
	o.cancelTurn = nil
	o.generation++
	o.status = core.StatusWaitingForDirector
	o.log.WithFields(logrus.Fields{
		"side":   side.Name(),
		"count":  o.m.Hallucinations(side),
		"reason": vErr.Error(),
	}).Error("hallucination ceiling reached, waiting for director")
}

// handleAgentError distinguishes cancellation (the turn was interrupted on
// purpose) from genuine transport faults, which escalate to Error status
// without consuming a hallucination retry.
func (o *Orchestrator) handleAgentError(ctx context.Context, gen uint64, log *logrus.Entry, err error) {
	if ctx.Err() != nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generation != gen || o.status != core.StatusRunning {
		return
	}
	o.inFlight = false
	o.cancelTurn = nil
	o.generation++
	o.status = core.StatusError
	log.WithError(err).Error("agent fault")
}

// applyValidated commits a validated move, resets the mover's hallucination
// counter, and schedules the successor turn unless the status changed while
// the move was being produced.
func (o *Orchestrator) applyValidated(gen uint64, side core.Color, mv rules.Move, commentary string, forced bool) {
	o.mu.Lock()
	if o.generation != gen || o.status != core.StatusRunning {
		o.mu.Unlock()
		return
	}

	pos := o.m.Current()
	next := rules.Apply(pos, mv)
	o.m.Append(next, mv.SAN, side, commentary, forced)
	o.m.ResetHallucinations(side)
	o.inFlight = false
	entry := o.m.Moves()[o.m.MoveCount()-1]
	history := o.m.RepetitionHistory()
	ctx, nextGen := o.armTurnLocked()
	o.mu.Unlock()

	o.log.WithFields(logrus.Fields{
		"side": side.Name(),
		"move": mv.SAN,
		"fen":  next.FEN(),
	}).Info("move applied")
	if o.rec != nil {
		o.rec.RecordMove(o.m.ID, entry)
	}

	// Detect the terminal position eagerly so GameOver never waits out the
	// inter-turn delay.
	if result, over := rules.Terminal(next, history); over {
		o.finish(nextGen, result)
		return
	}

	go o.runTurn(ctx, nextGen, o.cfg.TurnDelay)
}

func (o *Orchestrator) finish(gen uint64, result core.MatchResult) {
	o.mu.Lock()
	if o.generation != gen || (o.status != core.StatusRunning && o.status != core.StatusWaitingForDirector) {
		o.mu.Unlock()
		return
	}
	o.interruptLocked()
	o.status = core.StatusGameOver
	o.result = &result
	o.mu.Unlock()

	o.log.WithFields(logrus.Fields{
		"outcome": result.Outcome.String(),
		"reason":  result.Reason.String(),
	}).Info("match over")
	if o.rec != nil {
		o.rec.RecordResult(o.m.ID, result)
	}
}
