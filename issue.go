package tokenengine

import (
	"context"

	"github.com/google/uuid"

	"github.com/oidckit/tokenengine/internal/consts"
	"github.com/oidckit/tokenengine/token/jwt"
	"github.com/oidckit/tokenengine/x/errorsx"
)

// GenerateAuthorizeCode issues an authorization code for the grant. Codes
// are opaque carriers: the grant is serialized unfiltered and is fully
// re-filtered when the code is later exchanged.
func (e *Engine) GenerateAuthorizeCode(ctx context.Context, req *Request, resp *Response, grant *Grant) (tokenString string, err error) {
	return e.issue(ctx, policyAuthorizeCode, req, resp, grant)
}

// GenerateAccessToken issues an access token for the grant, reducing its
// claims to the ones destined for access tokens.
func (e *Engine) GenerateAccessToken(ctx context.Context, req *Request, resp *Response, grant *Grant) (tokenString string, err error) {
	return e.issue(ctx, policyAccessToken, req, resp, grant)
}

// GenerateIDToken issues an ID token for the grant, reducing its claims to
// the ones destined for ID tokens. When the response already carries an
// authorization code or access token the matching binding hash claims are
// emitted, so those tokens must be issued first.
func (e *Engine) GenerateIDToken(ctx context.Context, req *Request, resp *Response, grant *Grant) (tokenString string, err error) {
	return e.issue(ctx, policyIDToken, req, resp, grant)
}

// GenerateRefreshToken issues a refresh token for the grant. Like codes,
// refresh tokens are opaque carriers and are never filtered.
func (e *Engine) GenerateRefreshToken(ctx context.Context, req *Request, resp *Response, grant *Grant) (tokenString string, err error) {
	return e.issue(ctx, policyRefreshToken, req, resp, grant)
}

// issue is the shared issuance pipeline: prepare an owned working grant, run
// the issuance hook, then serialize through the signed backend or the opaque
// protector. An absent token is returned as ("", nil).
func (e *Engine) issue(ctx context.Context, policy kindPolicy, req *Request, resp *Response, source *Grant) (string, error) {
	if source == nil {
		return "", errorsx.WithStack(ErrServerError.WithDebug("No grant was provided to the issuance pipeline."))
	}

	if req == nil {
		req = &Request{}
	}

	logger := e.Config.GetLogger(ctx)

	working := &Grant{
		ID:         uuid.NewString(),
		Usage:      policy.usage,
		Identity:   filterIdentity(&source.Identity, policy.destination),
		Properties: map[string]string{},
	}

	for key, value := range source.Properties {
		working.Properties[key] = value
	}

	issued := e.Config.GetClock(ctx).Now().UTC()

	lifespan, ok := working.GetLifespan()
	if !ok {
		lifespan = policy.lifespan(ctx, e.Config)
	}

	working.SetIssuedAt(issued)
	working.SetExpiresAt(issued.Add(lifespan))

	if len(working.GetPresenters()) == 0 && req.ClientID != "" {
		working.SetPresenters(req.ClientID)
	}

	event := &IssuanceEvent{Request: req, Response: resp, Grant: working, Backend: e.backendFor(policy.usage)}

	if e.Hooks.Issuance != nil {
		if err := e.Hooks.Issuance.OnIssue(ctx, event); err != nil {
			return "", err
		}
	}

	switch event.Disposition() {
	case DispositionHandled:
		return event.Token(), nil
	case DispositionSkipped:
		logger.Debug("token issuance was skipped by the issuance hook", "usage", string(policy.usage))

		return "", nil
	}

	if event.Backend == nil {
		if e.Protector == nil {
			logger.Debug("no token was issued because neither a signed backend nor a protector is configured", "usage", string(policy.usage))

			return "", nil
		}

		tokenString, err := e.Protector.Protect(ctx, working)
		if err != nil {
			return "", errorsx.WithStack(ErrServerError.WithWrap(err).WithDebugf("Failed to protect the %s grant: %v.", policy.usage, err))
		}

		return tokenString, nil
	}

	return e.issueSigned(ctx, policy, req, resp, working, event.Backend)
}

func (e *Engine) issueSigned(ctx context.Context, policy kindPolicy, req *Request, resp *Response, working *Grant, backend SignedBackend) (string, error) {
	key, ok := e.Config.GetSigningKey(ctx)
	if !ok {
		return "", errorsx.WithStack(ErrServerError.WithDebug("A signed token backend is configured but no signing key is available."))
	}

	claims, err := e.signedClaims(ctx, policy, req, resp, working, key.Algorithm)
	if err != nil {
		return "", err
	}

	tokenString, err := backend.Encode(ctx, claims, jwt.EncodeOptions{
		Issuer:        e.Config.GetIssuer(ctx),
		SigningKey:    key,
		EncryptionKey: e.Config.GetEncryptionKey(ctx),
		Window:        jwt.Window{IssuedAt: working.GetIssuedAt(), ExpiresAt: working.GetExpiresAt()},
	})
	if err != nil {
		return "", errorsx.WithStack(ErrServerError.WithWrap(err).WithDebugf("Failed to serialize the signed %s: %v.", policy.usage, err))
	}

	return tokenString, nil
}

// signedClaims enriches the working grant into the claim set of a signed
// token.
func (e *Engine) signedClaims(ctx context.Context, policy kindPolicy, req *Request, resp *Response, working *Grant, alg string) (jwt.MapClaims, error) {
	logger := e.Config.GetLogger(ctx)

	claims := jwt.MapClaims{
		consts.ClaimJWTID: working.ID,
		consts.ClaimUsage: string(working.Usage),
	}

	if level := working.GetConfidentialityLevel(); level != "" {
		claims[consts.ClaimConfidentialityLevel] = level
	}

	if scopes := working.GetScopes(); len(scopes) > 0 {
		claims[consts.ClaimScope] = []string(scopes)
	}

	audiences := working.GetAudiences()
	if len(audiences) == 0 {
		audiences = working.GetResources()
	}

	if len(audiences) == 0 && policy.usage == UsageIDToken && req.ClientID != "" {
		audiences = Arguments{req.ClientID}
	}

	if len(audiences) > 0 {
		claims[consts.ClaimAudience] = []string(audiences)
	}

	// The signed format carries a single authorized party.
	if presenters := working.GetPresenters(); len(presenters) > 0 {
		if len(presenters) > 1 {
			logger.Warn("the grant has multiple presenters but the signed token format only supports one, keeping the first",
				"usage", string(working.Usage), "presenters", len(presenters))
		}

		claims[consts.ClaimAuthorizedParty] = presenters[0]
	}

	if subject := working.Identity.Subject(); subject != "" {
		claims[consts.ClaimSubject] = subject
		working.Identity.Remove(consts.ClaimNameIdentifier)
	} else if policy.usage == UsageIDToken {
		return nil, errorsx.WithStack(ErrServerError.WithDebug("Failed to issue an ID token because the grant carries no resolvable subject claim."))
	}

	if policy.usage == UsageIDToken {
		nonce := req.Nonce
		if nonce == "" {
			nonce = working.GetNonce()
		}

		if nonce != "" {
			claims[consts.ClaimNonce] = nonce
		}

		if resp != nil && resp.AuthorizationCode != "" {
			claims[consts.ClaimCodeHash] = jwt.HalfHash(alg, resp.AuthorizationCode)
		}

		if resp != nil && resp.AccessToken != "" {
			claims[consts.ClaimAccessTokenHash] = jwt.HalfHash(alg, resp.AccessToken)
		}
	}

	if policy.usage == UsageAccessToken && working.Identity.Actor != nil {
		claims[consts.ClaimActor] = actorClaim(working.Identity.Actor)
	}

	fromIdentity := map[string]bool{}

	for _, c := range working.Identity.Claims {
		if c.Type == consts.ClaimSubject {
			continue
		}

		existing, ok := claims[c.Type]
		if !ok {
			claims[c.Type] = c.Value
			fromIdentity[c.Type] = true

			continue
		}

		// Claims set by the enrichment above win; repeated identity claims
		// of one type collapse into a list.
		if !fromIdentity[c.Type] {
			continue
		}

		switch v := existing.(type) {
		case string:
			claims[c.Type] = []string{v, c.Value}
		case []string:
			claims[c.Type] = append(v, c.Value)
		}
	}

	return claims, nil
}

func actorClaim(identity *Identity) map[string]any {
	claim := map[string]any{consts.ClaimSubject: identity.Subject()}

	if identity.Actor != nil {
		claim[consts.ClaimActor] = actorClaim(identity.Actor)
	}

	return claim
}
