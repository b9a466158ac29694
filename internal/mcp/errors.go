package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"timekeep/internal/domain/checklist"
	"timekeep/internal/domain/reminder"
	"timekeep/internal/domain/settings"
	"timekeep/internal/domain/tracking"
	"timekeep/internal/store"
)

// errInvalidParams covers malformed tool parameters caught before any
// service is called.
var errInvalidParams = errors.New("invalid params")

var timeNow = time.Now

// APIError is the structured error payload returned to tool callers.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, tracking.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: err.Error(), RecoveryHint: "Use list_activities to find valid ids"}
	case errors.Is(err, tracking.ErrDuplicateName), errors.Is(err, checklist.ErrDuplicateName):
		return &APIError{Code: "DUPLICATE_NAME", Message: err.Error(), RecoveryHint: "Pick a name not already in use"}
	case errors.Is(err, reminder.ErrReminderNotFound):
		return &APIError{Code: "REMINDER_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the reminder id"}
	case errors.Is(err, tracking.ErrInvalidInput),
		errors.Is(err, checklist.ErrInvalidInput),
		errors.Is(err, reminder.ErrInvalidInput),
		errors.Is(err, settings.ErrInvalidTheme),
		errors.Is(err, errInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, store.ErrUnavailable):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Retry; state changes may not have persisted"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}

// toolError renders a domain error as a tool-level error result.
func toolError(err error) *sdkmcp.CallToolResult {
	payload, marshalErr := json.Marshal(MapError(err))
	if marshalErr != nil {
		payload = []byte(fmt.Sprintf(`{"code":"INTERNAL","message":%q}`, err.Error()))
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(payload)}},
	}
}
