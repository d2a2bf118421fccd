// FILE: internal/transport/http/director_handler.go
package http

import (
	"errors"

	"llmchess/internal/core"
	"llmchess/internal/orchestrator"

	"github.com/gofiber/fiber/v2"
)

// ForceMove injects a director move for the side to play
func (h *HTTPHandler) ForceMove(c *fiber.Ctx) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}

	req, ok := c.Locals("validatedBody").(*core.ForceMoveRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	side, ok := core.ParseColor(req.Side)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid side",
			Code:    core.ErrInvalidRequest,
			Details: "side must be one of w, b, white, black",
		})
	}

	if err := o.ForceMove(side, req.Move); err != nil {
		return directorErrorResponse(c, err)
	}

	return c.JSON(o.Response())
}

// SkipTurn passes the move to the other side without touching the board
func (h *HTTPHandler) SkipTurn(c *fiber.Ctx) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}

	if err := o.SkipTurn(); err != nil {
		return directorErrorResponse(c, err)
	}

	return c.JSON(o.Response())
}

// OverridePrompt substitutes the next prompt sent to an agent
func (h *HTTPHandler) OverridePrompt(c *fiber.Ctx) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}

	req, ok := c.Locals("validatedBody").(*core.OverridePromptRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	o.OverridePrompt(req.Text)
	return c.JSON(o.Response())
}

// SetPosition replaces the board with an arbitrary FEN position
func (h *HTTPHandler) SetPosition(c *fiber.Ctx) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}

	req, ok := c.Locals("validatedBody").(*core.SetPositionRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	if err := o.SetPosition(req.FEN); err != nil {
		if errors.Is(err, orchestrator.ErrBadTransition) {
			return directorErrorResponse(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "position rejected",
			Code:    core.ErrInvalidFEN,
			Details: err.Error(),
		})
	}

	return c.JSON(o.Response())
}

// Adjudicate declares the match result by director fiat
func (h *HTTPHandler) Adjudicate(c *fiber.Ctx) error {
	o, ok := h.getOrchestrator(c)
	if !ok {
		return nil
	}

	req, ok := c.Locals("validatedBody").(*core.AdjudicateRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	outcome, ok := core.ParseOutcome(req.Outcome)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid outcome",
			Code:    core.ErrInvalidRequest,
			Details: "outcome must be one of white_wins, black_wins, draw",
		})
	}

	if err := o.Adjudicate(outcome); err != nil {
		return directorErrorResponse(c, err)
	}

	return c.JSON(o.Response())
}
