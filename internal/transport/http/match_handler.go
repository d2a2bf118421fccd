// FILE: internal/transport/http/match_handler.go
package http

import (
	"errors"

	"llmchess/internal/core"
	"llmchess/internal/orchestrator"
	"llmchess/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMatch builds the agents and orchestrator for a new match
func (h *HTTPHandler) CreateMatch(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*core.CreateMatchRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	matchID, err := h.svc.CreateMatch(*req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "failed to create match",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	o, _ := h.svc.GetMatch(matchID)
	return c.Status(fiber.StatusCreated).JSON(o.Response())
}

// ListMatches returns the telemetry view of every hosted match
func (h *HTTPHandler) ListMatches(c *fiber.Ctx) error {
	return c.JSON(h.svc.ListMatches())
}

// GetMatch retrieves the current match state
func (h *HTTPHandler) GetMatch(c *fiber.Ctx) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}
	return c.JSON(o.Response())
}

// DeleteMatch stops and removes a match
func (h *HTTPHandler) DeleteMatch(c *fiber.Ctx) error {
	if err := h.svc.DeleteMatch(c.Params("matchId")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "match not found",
			Code:  core.ErrMatchNotFound,
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}

	pos := o.Position()
	return c.JSON(core.BoardResponse{
		FEN:   pos.FEN(),
		Board: pos.ToASCII(),
	})
}

// GetHistory returns the persisted audit trail of a match. Unlike the other
// match routes it reads storage rather than the in-memory registry, so the
// history of a deleted match stays reachable.
func (h *HTTPHandler) GetHistory(c *fiber.Ctx) error {
	history, err := h.svc.GetHistory(c.Params("matchId"))
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(core.ErrorResponse{
				Error: "persistence is disabled on this server",
				Code:  core.ErrStorageDisabled,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error:   "history query failed",
			Code:    core.ErrInternalError,
			Details: err.Error(),
		})
	}
	return c.JSON(history)
}

// StartMatch begins automatic play from the idle state
func (h *HTTPHandler) StartMatch(c *fiber.Ctx) error {
	return h.transition(c, func(o *orchestrator.Orchestrator) error { return o.Start() })
}

// PauseMatch halts automatic play
func (h *HTTPHandler) PauseMatch(c *fiber.Ctx) error {
	return h.transition(c, func(o *orchestrator.Orchestrator) error { return o.Pause() })
}

// ResumeMatch continues automatic play after a pause
func (h *HTTPHandler) ResumeMatch(c *fiber.Ctx) error {
	return h.transition(c, func(o *orchestrator.Orchestrator) error { return o.Resume() })
}

// ResetMatch rewinds the match to its initial position
func (h *HTTPHandler) ResetMatch(c *fiber.Ctx) error {
	return h.transition(c, func(o *orchestrator.Orchestrator) error { return o.Reset() })
}

// transition runs a lifecycle action and maps its failure modes
func (h *HTTPHandler) transition(c *fiber.Ctx, action func(*orchestrator.Orchestrator) error) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}

	if err := action(o); err != nil {
		code := core.ErrInvalidState
		msg := "transition not permitted"
		if o.Status() == core.StatusError {
			code = core.ErrAgentFault
			msg = "an agent fault halted the match; reset or delete it"
		}
		return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
			Error:   msg,
			Code:    code,
			Details: err.Error(),
		})
	}

	return c.JSON(o.Response())
}

// getOrchestrator resolves the :matchId path parameter. On a miss the 404
// response is already written and ok is false.
func (h *HTTPHandler) getOrchestrator(c *fiber.Ctx) (*orchestrator.Orchestrator, bool) {
	o, err := h.svc.GetMatch(c.Params("matchId"))
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "match not found",
			Code:  core.ErrMatchNotFound,
		})
		return nil, false
	}
	return o, true
}

// directorErrorResponse picks the HTTP status and code for a failed
// director action.
func directorErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrBadTransition):
		return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
			Error:   "action not permitted in current state",
			Code:    core.ErrInvalidState,
			Details: err.Error(),
		})
	case errors.Is(err, orchestrator.ErrWrongSide):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "wrong side to move",
			Code:    core.ErrIllegalMove,
			Details: err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "illegal move",
			Code:    core.ErrIllegalMove,
			Details: err.Error(),
		})
	}
}
