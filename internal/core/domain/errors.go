package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrValidation is returned when a request carries a missing grid or a depth outside the allowed range.
	ErrValidation = zerr.New("invalid solve parameters")

	// ErrSolverTimeout is returned when the solver does not finish within the configured bound.
	ErrSolverTimeout = zerr.New("solver timed out")

	// ErrSolverExecution is returned when the solver cannot be started or exits with a non-zero status.
	ErrSolverExecution = zerr.New("solver execution failed")

	// ErrStorage is returned when the shared state store cannot be read or written.
	ErrStorage = zerr.New("shared state storage failed")

	// ErrNetwork is returned when the solve server cannot be reached or answers with an unusable response.
	ErrNetwork = zerr.New("solve server unreachable")

	// ErrNoGridElements is returned when a board contains no grid cells.
	ErrNoGridElements = zerr.New("no grid elements found on page")

	// ErrNoGridLetters is returned when grid cells exist but none carries a letter.
	ErrNoGridLetters = zerr.New("could not extract letters from grid")

	// ErrNoActiveContext is returned when a request needs an observing context and none is attached.
	ErrNoActiveContext = zerr.New("no active observing context found")

	// ErrUnknownRequest is returned when the hub receives a request variant it does not handle.
	ErrUnknownRequest = zerr.New("unknown request")

	// ErrUnknownAttempt is returned when an outcome carries a token that no submitted attempt owns.
	ErrUnknownAttempt = zerr.New("outcome does not match a submitted attempt")

	// ErrNoCurrentAttempt is returned when an outcome arrives before any input was observed.
	ErrNoCurrentAttempt = zerr.New("no current attempt")

	// ErrUndeliverable is returned by a subscriber that can no longer accept messages.
	ErrUndeliverable = zerr.New("observing context unreachable")

	// ErrInvalidSignal is returned when a signal line cannot be parsed.
	ErrInvalidSignal = zerr.New("invalid signal")

	// ErrUnknownStoreBackend is returned when the configuration names an unsupported store backend.
	ErrUnknownStoreBackend = zerr.New("unknown store backend, expected 'memory', 'file', 'sqlite' or 'redis'")

	// ErrWatchUnsupported is returned when watching is requested for a backend that is not file based.
	ErrWatchUnsupported = zerr.New("watching requires the file store backend")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the resolved configuration is unusable.
	ErrInvalidConfig = zerr.New("invalid configuration")
)

// Error codes reported to observing contexts alongside a failed response.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeSolverTimeout = "SOLVER_TIMEOUT"
	CodeSolverError   = "SOLVER_ERROR"
	CodeNetworkError  = "NETWORK_ERROR"
	CodeInternal      = "INTERNAL"
)

// ErrorCode maps err to the code of its root cause.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return CodeInvalidInput
	case errors.Is(err, ErrSolverTimeout):
		return CodeSolverTimeout
	case errors.Is(err, ErrSolverExecution):
		return CodeSolverError
	case errors.Is(err, ErrNetwork):
		return CodeNetworkError
	default:
		return CodeInternal
	}
}
