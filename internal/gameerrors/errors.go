package gameerrors

import (
	"errors"
	"fmt"
)

// Error codes for the game core.
const (
	// Configuration errors
	ErrCodeConfigInvalid = "CONFIG_INVALID"

	// Level catalog errors
	ErrCodeLevelOutOfRange = "LEVEL_OUT_OF_RANGE"

	// Storage errors
	ErrCodeStorageCorrupt     = "STORAGE_CORRUPT"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// GameError represents a classified error raised by the game core.
type GameError struct {
	Code    string
	Message string
	Err     error
}

func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GameError) Unwrap() error {
	return e.Err
}

// New creates a new GameError.
func New(code, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for an inconsistent configuration value.
func ErrConfigInvalid(reason string) *GameError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason), nil)
}

// ErrLevelOutOfRange returns an error when a level is outside the catalog.
func ErrLevelOutOfRange(level, size int) *GameError {
	return New(ErrCodeLevelOutOfRange, fmt.Sprintf("level %d outside catalog of %d levels", level, size), nil)
}

// ErrStorageCorrupt wraps a decode failure of persisted data.
func ErrStorageCorrupt(key string, err error) *GameError {
	return New(ErrCodeStorageCorrupt, fmt.Sprintf("stored value for %q is unreadable", key), err)
}

// ErrStorageUnavailable wraps a failed read or write against the store.
func ErrStorageUnavailable(operation, key string, err error) *GameError {
	return New(ErrCodeStorageUnavailable, fmt.Sprintf("storage %s failed for %q", operation, key), err)
}

// Is reports whether err carries a GameError with the given code.
func Is(err error, code string) bool {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code == code
	}
	return false
}
