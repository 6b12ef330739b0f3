package aiquizhelper

import (
	"errors"
	"fmt"
)

// Sentinel errors for lookups against the store.
var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAttemptNotFound = errors.New("quiz attempt not found")
)

// errEmptyResponse marks a vendor call that succeeded but carried no
// content. Always wrapped in a GenerationError.
var errEmptyResponse = errors.New("no content received from model")

// ConfigError reports an invalid provider configuration, such as a missing
// API key. It is raised at provider construction, never at first call.
type ConfigError struct {
	Provider string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s provider configuration: %s", e.Provider, e.Reason)
}

// GenerationError wraps a vendor SDK failure so callers never see
// vendor-specific error types.
type GenerationError struct {
	Provider string
	Op       string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ParseError reports model output that failed schema validation.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response format from AI: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid response format from AI: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
