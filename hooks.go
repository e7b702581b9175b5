package tokenengine

import (
	"context"
)

// Disposition is the tri-state outcome of a hook invocation. The zero value
// continues with the default pipeline. Handled and Skipped are deliberately
// distinct tags rather than a nil check on the output value: a hook that
// handles an operation with an empty result is not the same as a hook that
// declines it entirely.
type Disposition int

const (
	// DispositionContinue lets the default pipeline logic run.
	DispositionContinue Disposition = iota

	// DispositionHandled short-circuits the pipeline with the value the hook
	// set, even when that value is empty.
	DispositionHandled

	// DispositionSkipped short-circuits the pipeline with an absent result.
	DispositionSkipped
)

// IssuanceEvent is the mutable context handed to issuance hooks before the
// default logic runs.
type IssuanceEvent struct {
	// Request is the protocol request being served.
	Request *Request

	// Response is the protocol response assembled so far.
	Response *Response

	// Grant is the fully prepared grant about to be serialized. Hooks may
	// mutate it in place.
	Grant *Grant

	// Backend is the signed-token backend the pipeline will use, nil when
	// the opaque path is selected. Hooks may replace or clear it.
	Backend SignedBackend

	disposition Disposition
	token       string
}

// Handle short-circuits the pipeline and returns tokenString as the issued
// token. An empty string is returned as-is, use Skip to issue no token.
func (e *IssuanceEvent) Handle(tokenString string) {
	e.disposition = DispositionHandled
	e.token = tokenString
}

// Skip declines the operation: the pipeline returns an absent token.
func (e *IssuanceEvent) Skip() {
	e.disposition = DispositionSkipped
}

func (e *IssuanceEvent) Disposition() Disposition {
	return e.disposition
}

func (e *IssuanceEvent) Token() string {
	return e.token
}

// ValidationEvent is the mutable context handed to validation hooks before
// the default logic runs.
type ValidationEvent struct {
	// Request is the protocol request presenting the token.
	Request *Request

	// Usage is the token kind this validation call expects.
	Usage Usage

	// Token is the raw presented token string.
	Token string

	// Backend is the signed-token backend the pipeline will use, nil when
	// the opaque path is selected. Hooks may replace or clear it.
	Backend SignedBackend

	disposition Disposition
	grant       *Grant
}

// Handle short-circuits the pipeline and returns grant as the validation
// result. The pipeline force-sets the grant's usage to the expected kind.
func (e *ValidationEvent) Handle(grant *Grant) {
	e.disposition = DispositionHandled
	e.grant = grant
}

// Skip declines the operation: the pipeline returns an absent grant.
func (e *ValidationEvent) Skip() {
	e.disposition = DispositionSkipped
}

func (e *ValidationEvent) Disposition() Disposition {
	return e.disposition
}

func (e *ValidationEvent) Grant() *Grant {
	return e.grant
}

// IssuanceHook intercepts token issuance before the default pipeline. It is
// the single suspension point of an issuance call and may perform blocking
// work against the provided context.
type IssuanceHook interface {
	OnIssue(ctx context.Context, event *IssuanceEvent) error
}

// ValidationHook intercepts token validation before the default pipeline.
type ValidationHook interface {
	OnValidate(ctx context.Context, event *ValidationEvent) error
}

// IssuanceHookFunc adapts a function to the IssuanceHook interface.
type IssuanceHookFunc func(ctx context.Context, event *IssuanceEvent) error

func (f IssuanceHookFunc) OnIssue(ctx context.Context, event *IssuanceEvent) error {
	return f(ctx, event)
}

// ValidationHookFunc adapts a function to the ValidationHook interface.
type ValidationHookFunc func(ctx context.Context, event *ValidationEvent) error

func (f ValidationHookFunc) OnValidate(ctx context.Context, event *ValidationEvent) error {
	return f(ctx, event)
}

// Hooks bundles the optional host supplied interception points. Nil fields
// mean the default pipeline runs unconditionally.
type Hooks struct {
	Issuance   IssuanceHook
	Validation ValidationHook
}
