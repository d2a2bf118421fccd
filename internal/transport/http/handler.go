// FILE: internal/transport/http/handler.go
package http

import (
	"fmt"
	"strings"
	"time"

	"llmchess/internal/core"
	"llmchess/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type HTTPHandler struct {
	svc *service.Service
}

func NewHTTPHandler(svc *service.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func NewFiberApp(svc *service.Service, devMode bool) *fiber.App {
	// Create handler
	h := NewHTTPHandler(svc)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	// API v1 routes with rate limiting
	api := app.Group("/api/v1")

	// Director requests arrive at human speed; agents never call this API.
	maxReq := 5
	if devMode {
		maxReq = 50
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Check X-Forwarded-For first, then RemoteIP
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				// Take the first IP from X-Forwarded-For chain
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
		Storage:                nil, // Use in-memory storage (default)
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
	}))

	// Content-Type validation for POST requests
	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	// Match lifecycle
	api.Post("/matches", h.CreateMatch)
	api.Get("/matches", h.ListMatches)
	api.Get("/matches/:matchId", h.GetMatch)
	api.Delete("/matches/:matchId", h.DeleteMatch)
	api.Get("/matches/:matchId/board", h.GetBoard)
	api.Get("/matches/:matchId/history", h.GetHistory)
	api.Post("/matches/:matchId/start", h.StartMatch)
	api.Post("/matches/:matchId/pause", h.PauseMatch)
	api.Post("/matches/:matchId/resume", h.ResumeMatch)
	api.Post("/matches/:matchId/reset", h.ResetMatch)

	// Director control surface
	api.Post("/matches/:matchId/director/move", h.ForceMove)
	api.Post("/matches/:matchId/director/skip", h.SkipTurn)
	api.Post("/matches/:matchId/director/prompt", h.OverridePrompt)
	api.Post("/matches/:matchId/director/position", h.SetPosition)
	api.Post("/matches/:matchId/director/adjudicate", h.Adjudicate)

	return app
}

// contentTypeValidator ensures POST requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == "POST" {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		// Map HTTP status to error codes
		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrMatchNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// Health check endpoint
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"storage": h.svc.GetStorageHealth(),
		"time":    time.Now().Unix(),
	})
}
