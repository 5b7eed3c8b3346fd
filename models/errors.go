package models

import (
	"fmt"
	"strings"
)

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeStrategyFailed = "STRATEGY_FAILED"
	ErrCodeExhausted      = "ALL_STRATEGIES_FAILED"
	ErrCodeTimeout        = "SCRAPE_TIMEOUT"
	ErrCodeNavigation     = "NAVIGATION_FAILED"
	ErrCodeBrowserCrash   = "BROWSER_CRASH"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError reports a request rejected before any strategy ran:
// missing URL, URL without a recognized scheme, or an unknown strategy
// name.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ExhaustedError reports that every strategy on the automatic chain
// failed. Attempts holds one entry per strategy tried, in order.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %s", a.Strategy, a.Error)
	}
	return "all strategies failed: " + strings.Join(parts, "; ")
}

// StrategyFailedError reports a pinned-strategy request that failed.
// EscalationReasons holds the render strategies' errors when the pinned
// static strategy signalled that the page needs script execution and
// the subsequent escalation also failed.
type StrategyFailedError struct {
	Strategy          string
	Reason            string
	EscalationReasons []string
}

func (e *StrategyFailedError) Error() string {
	if len(e.EscalationReasons) == 0 {
		return fmt.Sprintf("%s: %s", e.Strategy, e.Reason)
	}
	return fmt.Sprintf("%s: %s (escalation: %s)",
		e.Strategy, e.Reason, strings.Join(e.EscalationReasons, "; "))
}

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}
