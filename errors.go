package tokenengine

import (
	"fmt"
	"net/http"
)

// RFC6749Error is the error shape the surrounding protocol layer renders.
// Within the engine it only ever surfaces for configuration level failures;
// request level failures are absent results, never errors.
type RFC6749Error struct {
	ErrorField       string
	DescriptionField string
	HintField        string
	DebugField       string
	CodeField        int

	cause error
}

// ErrServerError is raised for configuration level failures such as a missing
// signing key. Issuing a broken or unverifiable token silently is never
// acceptable, so these abort loudly.
var ErrServerError = &RFC6749Error{
	ErrorField:       "server_error",
	DescriptionField: "The authorization server encountered an unexpected condition that prevented it from fulfilling the request.",
	CodeField:        http.StatusInternalServerError,
}

func (e RFC6749Error) Error() string {
	return e.ErrorField
}

// Unwrap returns the wrapped error, if any.
func (e *RFC6749Error) Unwrap() error {
	return e.cause
}

// Is treats two RFC6749 errors with the same error field as equal so
// errors.Is(err, ErrServerError) works on derived copies.
func (e *RFC6749Error) Is(target error) bool {
	t, ok := target.(*RFC6749Error)
	if !ok {
		return false
	}

	return e.ErrorField == t.ErrorField
}

func (e RFC6749Error) GetDescription() string {
	return e.DescriptionField
}

func (e RFC6749Error) Reason() string {
	return e.HintField
}

func (e RFC6749Error) Debug() string {
	return e.DebugField
}

func (e RFC6749Error) StatusCode() int {
	return e.CodeField
}

// WithHint returns a copy carrying a hint safe to show to end users.
func (e RFC6749Error) WithHint(hint string) *RFC6749Error {
	e.HintField = hint

	return &e
}

func (e RFC6749Error) WithHintf(hint string, args ...any) *RFC6749Error {
	return e.WithHint(fmt.Sprintf(hint, args...))
}

// WithDebug returns a copy carrying operator-only diagnostic detail.
func (e RFC6749Error) WithDebug(debug string) *RFC6749Error {
	e.DebugField = debug

	return &e
}

func (e RFC6749Error) WithDebugf(debug string, args ...any) *RFC6749Error {
	return e.WithDebug(fmt.Sprintf(debug, args...))
}

// WithWrap returns a copy wrapping the given cause.
func (e RFC6749Error) WithWrap(cause error) *RFC6749Error {
	e.cause = cause

	return &e
}
