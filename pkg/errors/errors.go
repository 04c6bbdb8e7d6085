// Package errors provides structured error handling for coinctl.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitNotFound = 3 // Resource not found
	ExitUnsafe   = 4 // Operation blocked by a safety check
)

// CLIError is the structured error type for coinctl.
type CLIError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *CLIError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for CLIError.
func (e *CLIError) Is(target error) bool {
	var t *CLIError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &CLIError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &CLIError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Amount errors.
	ErrInvalidAmount = &CLIError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount format",
		ExitCode: ExitInput,
	}

	ErrAmountPrecision = &CLIError{
		Code:     "AMOUNT_PRECISION",
		Message:  "amount has too many decimal places and would lose precision",
		ExitCode: ExitInput,
	}

	// Coin errors.
	ErrInvalidCoinID = &CLIError{
		Code:     "INVALID_COIN_ID",
		Message:  "invalid coin id",
		ExitCode: ExitInput,
	}

	ErrCoinNotFound = &CLIError{
		Code:     "COIN_NOT_FOUND",
		Message:  "Could not find target coin.",
		ExitCode: ExitNotFound,
	}

	ErrTooManyCoins = &CLIError{
		Code:     "TOO_MANY_COINS",
		Message:  "coin count is greater than the maximum limit of 500 coins",
		ExitCode: ExitInput,
	}

	// Split errors.
	ErrMissingSplitInput = &CLIError{
		Code:     "MISSING_SPLIT_INPUT",
		Message:  "Must use either -a or -n. For more information run --help.",
		ExitCode: ExitInput,
	}

	// Combine errors.
	ErrFeeTooHigh = &CLIError{
		Code:     "FEE_TOO_HIGH",
		Message:  "Fee is >= the amount of coins selected. To continue, please use --override flag.",
		ExitCode: ExitUnsafe,
	}

	// Wallet errors.
	ErrWalletNotFound = &CLIError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "wallet not found",
		ExitCode: ExitNotFound,
	}

	ErrWalletNotSynced = &CLIError{
		Code:     "WALLET_NOT_SYNCED",
		Message:  "wallet is not synced",
		ExitCode: ExitGeneral,
	}

	// Transport errors.
	ErrNetworkError = &CLIError{
		Code:     "NETWORK_ERROR",
		Message:  "wallet RPC communication failed",
		ExitCode: ExitGeneral,
	}

	ErrRPCFailed = &CLIError{
		Code:     "RPC_FAILED",
		Message:  "wallet RPC reported failure",
		ExitCode: ExitGeneral,
	}

	// Config errors.
	ErrConfigNotFound = &CLIError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &CLIError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new CLIError with the given code and message.
func New(code, message string) *CLIError {
	return &CLIError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ce *CLIError
	if errors.As(err, &ce) {
		return &CLIError{
			Code:       ce.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ce.Message),
			Details:    ce.Details,
			Suggestion: ce.Suggestion,
			Cause:      err,
			ExitCode:   ce.ExitCode,
		}
	}

	return &CLIError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ce *CLIError
	if errors.As(err, &ce) {
		return &CLIError{
			Code:       ce.Code,
			Message:    ce.Message,
			Details:    details,
			Suggestion: ce.Suggestion,
			Cause:      ce.Cause,
			ExitCode:   ce.ExitCode,
		}
	}

	return &CLIError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ce *CLIError
	if errors.As(err, &ce) {
		return &CLIError{
			Code:       ce.Code,
			Message:    ce.Message,
			Details:    ce.Details,
			Suggestion: suggestion,
			Cause:      ce.Cause,
			ExitCode:   ce.ExitCode,
		}
	}

	return &CLIError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
