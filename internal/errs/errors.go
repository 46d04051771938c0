// Package errs holds the error kinds a payout run can end with.
//
// Configuration and input errors stop a run before anything is sent.
// Provider errors never leave the provider client; they are folded into a
// failed models.BatchResult instead.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrInputParse    = errors.New("input parse error")
	ErrProvider      = errors.New("provider error")
)

// ConfigurationError reports missing or invalid settings or credentials.
type ConfigurationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Err}
}

// Configf builds a ConfigurationError for field.
func Configf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InputParseError reports a source row or file that cannot be interpreted.
// Row is 0 when the problem is not tied to a single row (e.g. a missing column).
type InputParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *InputParseError) Error() string {
	if e == nil {
		return ""
	}
	var where string
	switch {
	case e.Row > 0 && e.Field != "":
		where = fmt.Sprintf("row %d, column %q", e.Row, e.Field)
	case e.Row > 0:
		where = fmt.Sprintf("row %d", e.Row)
	case e.Field != "":
		where = fmt.Sprintf("column %q", e.Field)
	default:
		where = "input"
	}
	if e.Value != "" {
		return fmt.Sprintf("%s: cannot parse %q: %v", where, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *InputParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInputParse}
	}
	return []error{ErrInputParse, e.Err}
}

// ProviderError is a failure reported by, or on the way to, the payout provider.
type ProviderError struct {
	StatusCode int
	Name       string // provider error name, e.g. VALIDATION_ERROR or invalid_client
	Message    string
	Err        error // transport error, if any
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case e.Name != "" && e.Message != "":
		return e.Name + ": " + e.Message
	case e.Message != "":
		return e.Message
	case e.Name != "":
		return e.Name
	default:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProvider}
	}
	return []error{ErrProvider, e.Err}
}
