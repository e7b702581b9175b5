package tokenengine

import (
	"context"
	"time"
)

// kindPolicy captures the per-kind deltas of the otherwise shared pipeline:
// the usage tag, the claim destination filtered for, and the configured
// default lifespan. Keeping the four kinds in one parameterized algorithm is
// what guarantees the shared invariants (hook precedence, usage re-check)
// cannot drift between kinds.
type kindPolicy struct {
	usage Usage

	// destination is the claim destination tag exposed by this kind, empty
	// for the opaque carrier kinds which are never filtered.
	destination string

	lifespan func(ctx context.Context, c *Config) time.Duration
}

var (
	policyAuthorizeCode = kindPolicy{
		usage: UsageAuthorizeCode,
		lifespan: func(ctx context.Context, c *Config) time.Duration {
			return c.GetAuthorizeCodeLifespan(ctx)
		},
	}

	policyAccessToken = kindPolicy{
		usage:       UsageAccessToken,
		destination: string(UsageAccessToken),
		lifespan: func(ctx context.Context, c *Config) time.Duration {
			return c.GetAccessTokenLifespan(ctx)
		},
	}

	policyIDToken = kindPolicy{
		usage:       UsageIDToken,
		destination: string(UsageIDToken),
		lifespan: func(ctx context.Context, c *Config) time.Duration {
			return c.GetIDTokenLifespan(ctx)
		},
	}

	policyRefreshToken = kindPolicy{
		usage: UsageRefreshToken,
		lifespan: func(ctx context.Context, c *Config) time.Duration {
			return c.GetRefreshTokenLifespan(ctx)
		},
	}
)
