package tokenengine

import (
	"context"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/hashicorp/go-hclog"
)

// Default lifespans applied when the Config leaves them unset and the grant
// carries no override.
const (
	DefaultAuthorizeCodeLifespan = time.Minute * 5
	DefaultAccessTokenLifespan   = time.Hour
	DefaultIDTokenLifespan       = time.Minute * 20
	DefaultRefreshTokenLifespan  = time.Hour * 24 * 14
)

// Config is the process wide engine configuration. It is constructed once at
// startup and read-only afterwards; the getters exist so pipeline code never
// has to care about unset fields.
type Config struct {
	// Issuer is written to and required of signed tokens.
	Issuer string

	AuthorizeCodeLifespan time.Duration
	AccessTokenLifespan   time.Duration
	IDTokenLifespan       time.Duration
	RefreshTokenLifespan  time.Duration

	// SigningKeys holds the token signing credentials. The first key signs
	// every new token; all keys are trusted when validating, which is what
	// keeps previously issued tokens valid across a key rollover.
	SigningKeys []jose.JSONWebKey

	// EncryptionKey optionally nests signed tokens inside a JWE.
	EncryptionKey *jose.JSONWebKey

	Clock ClockProvider

	Logger hclog.Logger
}

func (c *Config) GetIssuer(ctx context.Context) string {
	return c.Issuer
}

func (c *Config) GetAuthorizeCodeLifespan(ctx context.Context) time.Duration {
	if c.AuthorizeCodeLifespan <= 0 {
		return DefaultAuthorizeCodeLifespan
	}

	return c.AuthorizeCodeLifespan
}

func (c *Config) GetAccessTokenLifespan(ctx context.Context) time.Duration {
	if c.AccessTokenLifespan <= 0 {
		return DefaultAccessTokenLifespan
	}

	return c.AccessTokenLifespan
}

func (c *Config) GetIDTokenLifespan(ctx context.Context) time.Duration {
	if c.IDTokenLifespan <= 0 {
		return DefaultIDTokenLifespan
	}

	return c.IDTokenLifespan
}

func (c *Config) GetRefreshTokenLifespan(ctx context.Context) time.Duration {
	if c.RefreshTokenLifespan <= 0 {
		return DefaultRefreshTokenLifespan
	}

	return c.RefreshTokenLifespan
}

// GetSigningKey returns the active signing credential, the first configured
// key.
func (c *Config) GetSigningKey(ctx context.Context) (key jose.JSONWebKey, ok bool) {
	if len(c.SigningKeys) == 0 {
		return jose.JSONWebKey{}, false
	}

	return c.SigningKeys[0], true
}

// GetTrustedKeys returns every configured signing credential. Validation
// accepts any of them.
func (c *Config) GetTrustedKeys(ctx context.Context) []jose.JSONWebKey {
	return c.SigningKeys
}

func (c *Config) GetEncryptionKey(ctx context.Context) *jose.JSONWebKey {
	return c.EncryptionKey
}

func (c *Config) GetClock(ctx context.Context) ClockProvider {
	if c.Clock == nil {
		return NewRealClock()
	}

	return c.Clock
}

func (c *Config) GetLogger(ctx context.Context) hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}

	return c.Logger
}
