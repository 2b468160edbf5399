package keypage

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a malformed sort declaration or a server-side
// row value that violates its own declared constraints. It signals a
// developer or deployment defect, never bad client input.
type ConfigurationError struct {
	msg   string
	cause error
}

func newConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// Error - implements error.
func (e *ConfigurationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("configuration: %s: %v", e.msg, e.cause)
	}

	return "configuration: " + e.msg
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigurationError) Unwrap() error {
	return e.cause
}

// InvalidCursorError reports a client-supplied cursor that failed structural
// decoding, an identity/consistency check, or value validation during
// consumption. It signals bad, stale or tampered client input.
type InvalidCursorError struct {
	// Reason is a short, stable description of what failed,
	// e.g. "different query" or "malformed token".
	Reason string
	// Token is the raw cursor string as received, kept for diagnostics.
	Token string
	// Got and Want carry the offending and the expected value for
	// identity/consistency failures; nil otherwise.
	Got  any
	Want any

	cause error
}

func newInvalidCursorError(token, reason string) *InvalidCursorError {
	return &InvalidCursorError{Reason: reason, Token: token}
}

// Error - implements error.
func (e *InvalidCursorError) Error() string {
	var b strings.Builder
	b.WriteString("invalid cursor: ")
	b.WriteString(e.Reason)

	if e.Got != nil {
		fmt.Fprintf(&b, ": got '%v'", e.Got)
	}
	if e.Want != nil {
		fmt.Fprintf(&b, ", want '%v'", e.Want)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}

	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *InvalidCursorError) Unwrap() error {
	return e.cause
}

// UnknownSortError reports a request for a sort name that was never declared
// on the paginator. Detected lazily on first use of the sort.
type UnknownSortError struct {
	// Sort is the requested sort name.
	Sort string
	// Closest is the declared sort name nearest to the requested one.
	Closest string
}

// Error - implements error.
func (e *UnknownSortError) Error() string {
	if e.Closest == "" {
		return fmt.Sprintf("unknown sort '%s'", e.Sort)
	}

	return fmt.Sprintf("unknown sort '%s'. closest: '%s'", e.Sort, e.Closest)
}
