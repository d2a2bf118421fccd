// FILE: internal/core/error.go
package core

// API error codes surfaced in ErrorResponse.Code
const (
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrMatchNotFound     = "MATCH_NOT_FOUND"
	ErrIllegalMove       = "ILLEGAL_MOVE"
	ErrInvalidFEN        = "INVALID_FEN"
	ErrInvalidState      = "INVALID_STATE"
	ErrAgentFault        = "AGENT_FAULT"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrStorageDisabled   = "STORAGE_DISABLED"
	ErrInternalError     = "INTERNAL_ERROR"
)
