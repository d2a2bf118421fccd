// FILE: internal/orchestrator/director.go
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"llmchess/internal/board"
	"llmchess/internal/core"
	"llmchess/internal/rules"
)

// The director surface is the privileged human channel. Every operation here
// is synchronous: it either rejects with no state change or commits before
// returning. Illegal director input never consumes a hallucination retry.

// ForceMove plays a move on behalf of a side, bypassing the agent request
// but not legality: the move passes through the same validation as agent
// proposals, and an illegal one is rejected with no state change.
//
// Permitted while Running, Paused, or WaitingForDirector. From
// WaitingForDirector a successful force resumes automatic play; from Paused
// the match stays paused with the move committed.
func (o *Orchestrator) ForceMove(side core.Color, notation string) error {
	o.mu.Lock()

	switch o.status {
	case core.StatusRunning, core.StatusPaused, core.StatusWaitingForDirector:
	default:
		o.mu.Unlock()
		return fmt.Errorf("force move from %s: %w", o.status, ErrBadTransition)
	}

	pos := o.m.Current()
	if pos.Turn() != side {
		o.mu.Unlock()
		return fmt.Errorf("%s to move: %w", pos.Turn().Name(), ErrWrongSide)
	}

	mv, err := rules.ValidateMove(pos, notation)
	if err != nil && o.cfg.AutoQueenPromotion && errors.Is(err, rules.ErrPromotionRequired) {
		mv, err = rules.ValidateMove(pos, rules.WithQueenPromotion(notation))
	}
	if err != nil {
		o.mu.Unlock()
		return err
	}

	o.interruptLocked()
	next := rules.Apply(pos, mv)
	o.m.Append(next, mv.SAN, side, "", true)
	o.m.ResetHallucinations(side)
	entry := o.m.Moves()[o.m.MoveCount()-1]
	history := o.m.RepetitionHistory()

	resume := o.status == core.StatusRunning || o.status == core.StatusWaitingForDirector
	if resume {
		o.status = core.StatusRunning
	}
	o.mu.Unlock()

	o.log.WithFields(logrus.Fields{
		"side": side.Name(),
		"move": mv.SAN,
	}).Info("director forced move")
	if o.rec != nil {
		o.rec.RecordMove(o.m.ID, entry)
	}

	if result, over := rules.Terminal(next, history); over {
		o.mu.Lock()
		o.interruptLocked()
		o.status = core.StatusGameOver
		o.result = &result
		o.mu.Unlock()
		if o.rec != nil {
			o.rec.RecordResult(o.m.ID, result)
		}
		return nil
	}

	if resume {
		o.mu.Lock()
		ctx, gen := o.armTurnLocked()
		o.mu.Unlock()
		go o.runTurn(ctx, gen, o.cfg.TurnDelay)
	}
	return nil
}

// SkipTurn hands the move to the other side without touching the pieces.
// Permitted only while Paused or WaitingForDirector; from WaitingForDirector
// it resumes automatic play. The en-passant target is cleared because the
// preceding "move" was not a double pawn push.
func (o *Orchestrator) SkipTurn() error {
	o.mu.Lock()

	switch o.status {
	case core.StatusPaused, core.StatusWaitingForDirector:
	default:
		o.mu.Unlock()
		return fmt.Errorf("skip turn from %s: %w", o.status, ErrBadTransition)
	}

	pos := o.m.Current()
	skipped := pos.Turn()
	next := pos.WithTurn(core.OppositeColor(skipped)).WithEnPassant("")
	o.m.AppendEdit(next)
	o.m.ResetHallucinations(skipped)

	resume := o.status == core.StatusWaitingForDirector
	if resume {
		o.status = core.StatusRunning
	}
	o.mu.Unlock()

	o.log.WithField("skipped", skipped.Name()).Info("director skipped turn")

	if resume {
		o.mu.Lock()
		ctx, gen := o.armTurnLocked()
		o.mu.Unlock()
		go o.runTurn(ctx, gen, o.cfg.TurnDelay)
	}
	return nil
}

// OverridePrompt substitutes the next single turn's prompt. One-shot: the
// text is consumed by the next request step and then cleared.
func (o *Orchestrator) OverridePrompt(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.override = text
	o.log.Info("director override prompt set")
}

// SetPosition replaces the board outright. The director is trusted: the FEN
// must parse, but no legality check is applied. The new position joins the
// history, and an outstanding turn is aborted so it cannot commit against
// the stale board.
func (o *Orchestrator) SetPosition(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}

	o.mu.Lock()
	if o.status == core.StatusGameOver {
		o.mu.Unlock()
		return fmt.Errorf("set position from %s: %w", o.status, ErrBadTransition)
	}
	o.interruptLocked()
	o.m.AppendEdit(pos)
	running := o.status == core.StatusRunning
	var (
		ctx context.Context
		gen uint64
	)
	if running {
		ctx, gen = o.armTurnLocked()
	}
	o.mu.Unlock()

	o.log.WithField("fen", fen).Info("director set position")
	if running {
		go o.runTurn(ctx, gen, o.cfg.TurnDelay)
	}
	return nil
}

// Adjudicate ends the match by director decision.
func (o *Orchestrator) Adjudicate(outcome core.Outcome) error {
	o.mu.Lock()
	if o.status == core.StatusIdle || o.status == core.StatusGameOver {
		o.mu.Unlock()
		return fmt.Errorf("adjudicate from %s: %w", o.status, ErrBadTransition)
	}
	o.interruptLocked()
	result := core.MatchResult{Outcome: outcome, Reason: core.ReasonDirectorDecision}
	o.status = core.StatusGameOver
	o.result = &result
	o.mu.Unlock()

	o.log.WithField("outcome", outcome.String()).Info("director adjudicated match")
	if o.rec != nil {
		o.rec.RecordResult(o.m.ID, result)
	}
	return nil
}
