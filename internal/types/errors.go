package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Round errors
	ErrInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	ErrInvalidAction       ErrorCode = "INVALID_ACTION"
	ErrInvalidState        ErrorCode = "INVALID_STATE"
	ErrInvalidArgument     ErrorCode = "INVALID_ARGUMENT"
	ErrDeckExhausted       ErrorCode = "DECK_EXHAUSTED"

	// Startup errors
	ErrAssetMissing ErrorCode = "ASSET_MISSING"

	// System errors
	ErrWalletNotFound ErrorCode = "WALLET_NOT_FOUND"
	ErrInternalError  ErrorCode = "INTERNAL_ERROR"
)

// GameError represents a game-related error
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if err, or anything it wraps, is a GameError with the given code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if !As(err, &gameErr) {
		return false
	}
	return gameErr.Code == code
}

// As finds the first GameError in err's chain
func As(err error, target **GameError) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.As(err, target)
}

// Message returns the player-facing text of err: the GameError message when
// there is one, the plain error text otherwise.
func Message(err error) string {
	var gameErr *GameError
	if As(err, &gameErr) {
		return gameErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
