package errors

import (
	"errors"
	"fmt"
)

// Run-level failure taxonomy. Every pipeline invocation either completes
// and sends one message, or surfaces exactly one of these and ends.

var (
	// ErrUpstreamUnavailable indicates the FPL API was unreachable or
	// returned something unusable. Fatal to the current run.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrBaselineMissing indicates yesterday's price snapshot could not be
	// fetched or parsed. Degraded, not fatal: the run still sends a
	// user-visible warning instead of computed changes.
	ErrBaselineMissing = errors.New("baseline missing")

	// ErrDeliveryFailed indicates Telegram rejected the outbound message.
	// Fatal to the invocation, never retried.
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
