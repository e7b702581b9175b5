package tokenengine

import (
	"context"
	"sort"
	"strconv"

	"github.com/oidckit/tokenengine/internal/consts"
	"github.com/oidckit/tokenengine/token/jwt"
)

// ValidateAuthorizeCode reverses GenerateAuthorizeCode. An absent result
// (nil, nil) means the token was rejected; the caller renders the protocol
// error.
func (e *Engine) ValidateAuthorizeCode(ctx context.Context, req *Request, tokenString string) (grant *Grant, err error) {
	return e.validateToken(ctx, policyAuthorizeCode, req, tokenString)
}

// ValidateAccessToken reverses GenerateAccessToken.
func (e *Engine) ValidateAccessToken(ctx context.Context, req *Request, tokenString string) (grant *Grant, err error) {
	return e.validateToken(ctx, policyAccessToken, req, tokenString)
}

// ValidateIDToken reverses GenerateIDToken.
func (e *Engine) ValidateIDToken(ctx context.Context, req *Request, tokenString string) (grant *Grant, err error) {
	return e.validateToken(ctx, policyIDToken, req, tokenString)
}

// ValidateRefreshToken reverses GenerateRefreshToken.
func (e *Engine) ValidateRefreshToken(ctx context.Context, req *Request, tokenString string) (grant *Grant, err error) {
	return e.validateToken(ctx, policyRefreshToken, req, tokenString)
}

// validateToken is the shared validation pipeline: run the validation hook,
// parse the string through the signed backend or the opaque protector, then
// enforce the usage check. Every rejection is fail closed: the result is
// absent, never an error.
func (e *Engine) validateToken(ctx context.Context, policy kindPolicy, req *Request, tokenString string) (*Grant, error) {
	if req == nil {
		req = &Request{}
	}

	logger := e.Config.GetLogger(ctx)

	event := &ValidationEvent{Request: req, Usage: policy.usage, Token: tokenString, Backend: e.backendFor(policy.usage)}

	if e.Hooks.Validation != nil {
		if err := e.Hooks.Validation.OnValidate(ctx, event); err != nil {
			return nil, err
		}
	}

	switch event.Disposition() {
	case DispositionHandled:
		grant := event.Grant()

		// Repair hooks that forgot to tag the grant they produced.
		if grant != nil {
			grant.Usage = policy.usage
		}

		return grant, nil
	case DispositionSkipped:
		logger.Debug("token validation was skipped by the validation hook", "usage", string(policy.usage))

		return nil, nil
	}

	if tokenString == "" {
		return nil, nil
	}

	var grant *Grant

	if backend := event.Backend; backend != nil {
		if !backend.CanRead(tokenString) {
			logger.Debug("token is not a compact serialized signed token", "usage", string(policy.usage))

			return nil, nil
		}

		// Audience and lifetime checks belong to the calling protocol stage,
		// only issuer and signature are enforced here.
		claims, window, err := backend.Validate(ctx, tokenString, jwt.ValidateOptions{
			Issuer:        e.Config.GetIssuer(ctx),
			TrustedKeys:   e.Config.GetTrustedKeys(ctx),
			DecryptionKey: e.Config.GetEncryptionKey(ctx),
		})
		if err != nil {
			logger.Debug("signed token was rejected", "usage", string(policy.usage),
				"alg", jwt.PeekHeaderAlgorithm(tokenString), "error", err)

			return nil, nil
		}

		grant = grantFromClaims(claims, window, policy)
	} else {
		if e.Protector == nil {
			logger.Debug("no token was validated because neither a signed backend nor a protector is configured", "usage", string(policy.usage))

			return nil, nil
		}

		var err error

		if grant, err = e.Protector.Unprotect(ctx, tokenString); err != nil {
			logger.Debug("opaque token was rejected", "usage", string(policy.usage), "error", err)

			return nil, nil
		}
	}

	if grant == nil {
		return nil, nil
	}

	// Usage anti-confusion guard: a code presented as an access token, or
	// any other cross-kind replay, is rejected here regardless of backend.
	if grant.Usage != policy.usage {
		logger.Debug("token usage does not match the expected kind", "usage", string(grant.Usage), "expected", string(policy.usage))

		return nil, nil
	}

	return grant, nil
}

// grantFromClaims rebuilds a grant from a validated signed token: the
// timestamps lost by the signed format come from the validity window, the
// protocol properties from their respective claims, everything else becomes
// an identity claim destined to this token kind. The usage tag comes only
// from the usage claim, so a trusted-key token without one fails the kind
// check downstream.
func grantFromClaims(claims jwt.MapClaims, window jwt.Window, policy kindPolicy) *Grant {
	grant := &Grant{Properties: map[string]string{}}

	grant.SetIssuedAt(window.IssuedAt)
	grant.SetExpiresAt(window.ExpiresAt)

	for key, value := range claims {
		switch key {
		case consts.ClaimJWTID:
			grant.ID = claims.String(key)
		case consts.ClaimUsage:
			grant.Usage = Usage(claims.String(key))
		case consts.ClaimAudience:
			grant.SetAudiences(claims.Strings(key)...)
		case consts.ClaimAuthorizedParty:
			grant.SetPresenters(claims.String(key))
		case consts.ClaimScope:
			grant.SetScopes(claims.Strings(key)...)
		case consts.ClaimConfidentialityLevel:
			grant.SetConfidentialityLevel(claims.String(key))
		case consts.ClaimNonce:
			grant.SetNonce(claims.String(key))
		case consts.ClaimIssuer, consts.ClaimIssuedAt, consts.ClaimExpirationTime, consts.ClaimNotBefore:
			// Covered by the validity window and the issuer check.
		case consts.ClaimActor:
			grant.Identity.Actor = actorFromClaim(value)
		default:
			appendIdentityClaim(grant, key, value, policy.destination)
		}
	}

	sort.SliceStable(grant.Identity.Claims, func(i, j int) bool {
		return grant.Identity.Claims[i].Type < grant.Identity.Claims[j].Type
	})

	return grant
}

func appendIdentityClaim(grant *Grant, claimType string, value any, destination string) {
	var destinations Arguments

	if destination != "" {
		destinations = Arguments{destination}
	}

	switch v := value.(type) {
	case string:
		grant.Identity.Claims = append(grant.Identity.Claims, Claim{Type: claimType, Value: v, Destinations: destinations})
	case []any:
		for _, raw := range v {
			if s, ok := raw.(string); ok {
				grant.Identity.Claims = append(grant.Identity.Claims, Claim{Type: claimType, Value: s, Destinations: destinations})
			}
		}
	case bool:
		grant.Identity.Claims = append(grant.Identity.Claims, Claim{Type: claimType, Value: strconv.FormatBool(v), Destinations: destinations})
	case float64:
		grant.Identity.Claims = append(grant.Identity.Claims, Claim{Type: claimType, Value: strconv.FormatFloat(v, 'f', -1, 64), Destinations: destinations})
	}
}

func actorFromClaim(value any) *Identity {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	identity := &Identity{}

	if subject, ok := m[consts.ClaimSubject].(string); ok && subject != "" {
		identity.Set(consts.ClaimSubject, subject)
	}

	if nested, ok := m[consts.ClaimActor]; ok {
		identity.Actor = actorFromClaim(nested)
	}

	return identity
}
