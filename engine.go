// Package tokenengine implements the token lifecycle of an OAuth 2.0 /
// OpenID Connect authorization server: issuing and validating authorization
// codes, access tokens, ID tokens and refresh tokens. The surrounding
// endpoint layer hands it an authenticated grant and gets back opaque or
// signed token strings; presented tokens come back as reconstructed grants
// or an absent result.
package tokenengine

import (
	"context"

	"github.com/oidckit/tokenengine/token/jwt"
)

// Protector is the opaque-format collaborator: it serializes a grant to a
// protected string and reverses the transformation. The engine treats it as
// an atomic black box.
type Protector interface {
	Protect(ctx context.Context, grant *Grant) (tokenString string, err error)
	Unprotect(ctx context.Context, tokenString string) (grant *Grant, err error)
}

// SignedBackend is the self-contained signed token collaborator.
type SignedBackend interface {
	// CanRead reports whether the token string is syntactically parsable at
	// all. Validation of unreadable strings is rejected without touching key
	// material.
	CanRead(tokenString string) bool

	Encode(ctx context.Context, claims jwt.MapClaims, opts jwt.EncodeOptions) (tokenString string, err error)

	Validate(ctx context.Context, tokenString string, opts jwt.ValidateOptions) (claims jwt.MapClaims, window jwt.Window, err error)
}

// Engine exposes the eight token lifecycle operations: issue and validate
// for each of the four token kinds. All fields are fixed before first use
// and read-only afterwards; every call is independent and may run in
// parallel with any other.
type Engine struct {
	Config *Config

	// Protector handles every kind without a signed backend. With neither a
	// protector nor a backend configured for a kind, issuance and validation
	// of that kind yield absent results.
	Protector Protector

	// Per-kind signed token backends. Codes and refresh tokens are opaque
	// carriers and usually leave these nil; access and ID tokens typically
	// share one backend.
	AuthorizeCodeBackend SignedBackend
	AccessTokenBackend   SignedBackend
	IDTokenBackend       SignedBackend
	RefreshTokenBackend  SignedBackend

	Hooks Hooks
}

// NewEngine returns an engine using the default signed backend for access
// and ID tokens and the given protector for codes and refresh tokens.
func NewEngine(config *Config, protector Protector) *Engine {
	backend := jwt.NewDefaultBackend()

	return &Engine{
		Config:             config,
		Protector:          protector,
		AccessTokenBackend: backend,
		IDTokenBackend:     backend,
	}
}

func (e *Engine) backendFor(usage Usage) SignedBackend {
	switch usage {
	case UsageAuthorizeCode:
		return e.AuthorizeCodeBackend
	case UsageAccessToken:
		return e.AccessTokenBackend
	case UsageIDToken:
		return e.IDTokenBackend
	case UsageRefreshToken:
		return e.RefreshTokenBackend
	default:
		return nil
	}
}
