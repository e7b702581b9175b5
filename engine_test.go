package tokenengine_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oidckit/tokenengine"
	"github.com/oidckit/tokenengine/internal/gen"
	"github.com/oidckit/tokenengine/token/jwt"
	"github.com/oidckit/tokenengine/token/opaque"
)

var testSecret = []byte("integration-secret-32-byte-value")

func newTestConfig(clock tokenengine.ClockProvider) *tokenengine.Config {
	return &tokenengine.Config{
		Issuer:      "https://auth.example.com",
		SigningKeys: []jose.JSONWebKey{{Key: gen.MustRSAKey(), KeyID: "key-1", Algorithm: string(jose.RS256), Use: "sig"}},
		Clock:       clock,
	}
}

func newTestEngine(t *testing.T, config *tokenengine.Config) *tokenengine.Engine {
	protector, err := opaque.New(testSecret)
	require.NoError(t, err)

	return tokenengine.NewEngine(config, protector)
}

// decodeClaims reads the payload of a compact serialized JWS without
// validating it.
func decodeClaims(t *testing.T, tokenString string) map[string]any {
	segments := strings.Split(tokenString, ".")
	require.Len(t, segments, 3)

	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	require.NoError(t, err)

	claims := map[string]any{}
	require.NoError(t, json.Unmarshal(payload, &claims))

	return claims
}

func TestSignedAccessTokenRoundTrip(t *testing.T) {
	clock := tokenengine.NewFixedClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	engine := newTestEngine(t, newTestConfig(clock))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")
	grant.Identity.Set("email", "peter@example.com", "access_token", "id_token")
	grant.SetScopes("openid", "email")
	grant.SetAudiences("https://api.example.com")
	grant.SetPresenters("app-a")

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)
	require.True(t, jwt.IsSignedToken(tokenString))

	recovered, err := engine.ValidateAccessToken(context.Background(), nil, tokenString)
	require.NoError(t, err)
	require.NotNil(t, recovered)

	assert.Equal(t, tokenengine.UsageAccessToken, recovered.Usage)
	assert.Equal(t, tokenengine.Arguments{"app-a"}, recovered.GetPresenters())
	assert.Equal(t, tokenengine.Arguments{"https://api.example.com"}, recovered.GetAudiences())
	assert.Equal(t, tokenengine.Arguments{"openid", "email"}, recovered.GetScopes())
	assert.NotEmpty(t, recovered.ID)

	assert.True(t, recovered.GetIssuedAt().Equal(clock.Now()))
	assert.True(t, recovered.GetExpiresAt().Equal(clock.Now().Add(tokenengine.DefaultAccessTokenLifespan)))

	assert.Equal(t, "peter", recovered.Identity.GetValue("sub"))
	assert.Equal(t, "peter@example.com", recovered.Identity.GetValue("email"))
}

func TestOpaqueAuthorizeCodeRoundTrip(t *testing.T) {
	clock := tokenengine.NewFixedClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	engine := newTestEngine(t, newTestConfig(clock))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")
	grant.Identity.Set("color", "purple")
	grant.SetNonce("n-0S6_WzA2Mj")
	grant.SetScopes("openid")

	tokenString, err := engine.GenerateAuthorizeCode(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tokenString, "otk_ac_"))

	recovered, err := engine.ValidateAuthorizeCode(context.Background(), nil, tokenString)
	require.NoError(t, err)
	require.NotNil(t, recovered)

	assert.Equal(t, tokenengine.UsageAuthorizeCode, recovered.Usage)

	// Codes are opaque carriers: undeclared claims survive unfiltered.
	assert.Equal(t, "purple", recovered.Identity.GetValue("color"))
	assert.Equal(t, "n-0S6_WzA2Mj", recovered.GetNonce())
	assert.Equal(t, tokenengine.Arguments{"app-a"}, recovered.GetPresenters())
	assert.True(t, recovered.GetExpiresAt().Equal(clock.Now().Add(tokenengine.DefaultAuthorizeCodeLifespan)))
}

func TestUsageAntiConfusion(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")

	code, err := engine.GenerateAuthorizeCode(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	// A code replayed against the refresh token validator shares the opaque
	// backend yet must be rejected by the usage check.
	recovered, err := engine.ValidateRefreshToken(context.Background(), nil, code)
	require.NoError(t, err)
	assert.Nil(t, recovered)

	recovered, err = engine.ValidateAuthorizeCode(context.Background(), nil, code)
	require.NoError(t, err)
	assert.NotNil(t, recovered)

	accessToken, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	recovered, err = engine.ValidateIDToken(context.Background(), nil, accessToken)
	require.NoError(t, err)
	assert.Nil(t, recovered)
}

func TestClaimsDestinationFiltering(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")
	grant.Identity.Set("email", "peter@example.com", "id_token")
	grant.Identity.Set("groups", "admins", "access_token")
	grant.Identity.Set("color", "purple")

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	claims := decodeClaims(t, tokenString)

	assert.Equal(t, "peter", claims["sub"])
	assert.Equal(t, "admins", claims["groups"])
	assert.NotContains(t, claims, "email")
	assert.NotContains(t, claims, "color")
}

func TestAccessTokenEnrichmentScenario(t *testing.T) {
	t0 := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(t, newTestConfig(tokenengine.NewFixedClock(t0)))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "u1")
	grant.SetScopes("openid", "email")

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "client-1"}, nil, grant)
	require.NoError(t, err)

	claims := decodeClaims(t, tokenString)

	assert.Equal(t, "u1", claims["sub"])
	assert.Equal(t, []any{"openid", "email"}, claims["scope"])
	assert.Equal(t, "access_token", claims["usage"])
	assert.Equal(t, "client-1", claims["azp"])
	assert.NotEmpty(t, claims["jti"])
	assert.NotContains(t, claims, "name_id")

	assert.Equal(t, float64(t0.Unix()), claims["iat"])
	assert.Equal(t, float64(t0.Add(time.Hour).Unix()), claims["exp"])
}

func TestNameIdentifierFoldedIntoSubject(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("name_id", "u1")

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	claims := decodeClaims(t, tokenString)

	assert.Equal(t, "u1", claims["sub"])
	assert.NotContains(t, claims, "name_id")

	// The fold happens on the engine's owned copy, never on the caller's
	// grant.
	assert.Equal(t, "u1", grant.Identity.GetValue("name_id"))
}

func TestLifespanOverride(t *testing.T) {
	t0 := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(t, newTestConfig(tokenengine.NewFixedClock(t0)))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")
	grant.SetLifespan(90 * time.Second)

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	claims := decodeClaims(t, tokenString)

	assert.Equal(t, float64(t0.Add(90*time.Second).Unix()), claims["exp"])
}

func TestIDTokenBindingHashes(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")

	req := &tokenengine.Request{ClientID: "app-a", Nonce: "n-0S6_WzA2Mj"}
	resp := &tokenengine.Response{}

	var err error

	resp.AuthorizationCode, err = engine.GenerateAuthorizeCode(context.Background(), req, resp, grant)
	require.NoError(t, err)

	resp.AccessToken, err = engine.GenerateAccessToken(context.Background(), req, resp, grant)
	require.NoError(t, err)

	idToken, err := engine.GenerateIDToken(context.Background(), req, resp, grant)
	require.NoError(t, err)

	claims := decodeClaims(t, idToken)

	assert.Equal(t, jwt.HalfHash(string(jose.RS256), resp.AuthorizationCode), claims["c_hash"])
	assert.Equal(t, jwt.HalfHash(string(jose.RS256), resp.AccessToken), claims["at_hash"])
	assert.Equal(t, "n-0S6_WzA2Mj", claims["nonce"])
	assert.Equal(t, []any{"app-a"}, claims["aud"])

	decoded, err := base64.RawURLEncoding.DecodeString(claims["c_hash"].(string))
	require.NoError(t, err)
	require.Len(t, decoded, sha256.Size/2)

	digest := sha256.Sum256([]byte(resp.AuthorizationCode))
	assert.Equal(t, digest[:sha256.Size/2], decoded)
}

func TestIDTokenRequiresSubject(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("email", "peter@example.com", "id_token")

	_, err := engine.GenerateIDToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	assert.ErrorIs(t, err, tokenengine.ErrServerError)
}

func TestSignedBackendRequiresSigningKey(t *testing.T) {
	config := newTestConfig(nil)
	config.SigningKeys = nil

	engine := newTestEngine(t, config)

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")

	_, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	assert.ErrorIs(t, err, tokenengine.ErrServerError)
}

func TestMultiplePresentersKeepFirstAndWarn(t *testing.T) {
	var logs strings.Builder

	config := newTestConfig(nil)
	config.Logger = hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Debug})

	engine := newTestEngine(t, config)

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")
	grant.SetPresenters("app-a", "app-b")

	tokenString, err := engine.GenerateIDToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	claims := decodeClaims(t, tokenString)

	assert.Equal(t, "app-a", claims["azp"])
	assert.Contains(t, logs.String(), "multiple presenters")
}

func TestValidateRejectsGarbage(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	for _, tokenString := range []string{"", "garbage", "otk_at_tampered", "a.b.c"} {
		grant, err := engine.ValidateAccessToken(context.Background(), nil, tokenString)
		require.NoError(t, err, "token %q", tokenString)
		assert.Nil(t, grant, "token %q", tokenString)

		grant, err = engine.ValidateRefreshToken(context.Background(), nil, tokenString)
		require.NoError(t, err, "token %q", tokenString)
		assert.Nil(t, grant, "token %q", tokenString)
	}
}

func TestTamperedAccessTokenIsRejected(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	segments := strings.Split(tokenString, ".")
	require.Len(t, segments, 3)

	payload := segments[1]
	if payload[0] == 'A' {
		payload = "B" + payload[1:]
	} else {
		payload = "A" + payload[1:]
	}

	recovered, err := engine.ValidateAccessToken(context.Background(), nil, segments[0]+"."+payload+"."+segments[2])
	require.NoError(t, err)
	assert.Nil(t, recovered)

	recovered, err = engine.ValidateAccessToken(context.Background(), nil, tokenString)
	require.NoError(t, err)
	assert.NotNil(t, recovered)
}

func TestNoncePropagatesThroughCodeExchange(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")
	grant.SetNonce("n-0S6_WzA2Mj")

	code, err := engine.GenerateAuthorizeCode(context.Background(), &tokenengine.Request{ClientID: "app-a", Nonce: "n-0S6_WzA2Mj"}, nil, grant)
	require.NoError(t, err)

	exchanged, err := engine.ValidateAuthorizeCode(context.Background(), nil, code)
	require.NoError(t, err)
	require.NotNil(t, exchanged)

	// The token request carries no nonce; it must be restored from the
	// grant recovered when the code was deserialized.
	idToken, err := engine.GenerateIDToken(context.Background(), &tokenengine.Request{ClientID: "app-a", GrantType: "authorization_code"}, nil, exchanged)
	require.NoError(t, err)

	claims := decodeClaims(t, idToken)
	assert.Equal(t, "n-0S6_WzA2Mj", claims["nonce"])
}

func TestActorClaimRoundTrip(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")
	grant.Identity.Actor = &tokenengine.Identity{}
	grant.Identity.Actor.Set("sub", "service-1")
	grant.Identity.Actor.Actor = &tokenengine.Identity{}
	grant.Identity.Actor.Actor.Set("sub", "gateway-1")

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)

	claims := decodeClaims(t, tokenString)

	act, ok := claims["act"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "service-1", act["sub"])

	nested, ok := act["act"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gateway-1", nested["sub"])

	recovered, err := engine.ValidateAccessToken(context.Background(), nil, tokenString)
	require.NoError(t, err)
	require.NotNil(t, recovered)

	require.NotNil(t, recovered.Identity.Actor)
	assert.Equal(t, "service-1", recovered.Identity.Actor.GetValue("sub"))

	require.NotNil(t, recovered.Identity.Actor.Actor)
	assert.Equal(t, "gateway-1", recovered.Identity.Actor.Actor.GetValue("sub"))
}

// foreignSignedToken signs a claim set with the engine's own key but outside
// its issuance pipeline.
func foreignSignedToken(t *testing.T, config *tokenengine.Config, claims jwt.MapClaims) string {
	key, ok := config.GetSigningKey(context.Background())
	require.True(t, ok)

	tokenString, err := jwt.NewDefaultBackend().Encode(context.Background(), claims, jwt.EncodeOptions{
		Issuer:     config.Issuer,
		SigningKey: key,
	})
	require.NoError(t, err)

	return tokenString
}

func TestValidateRecoversNumericAndBooleanClaims(t *testing.T) {
	config := newTestConfig(nil)
	engine := newTestEngine(t, config)

	tokenString := foreignSignedToken(t, config, jwt.MapClaims{
		"usage":     "access_token",
		"sub":       "peter",
		"auth_time": 1704888000,
		"verified":  true,
	})

	recovered, err := engine.ValidateAccessToken(context.Background(), nil, tokenString)
	require.NoError(t, err)
	require.NotNil(t, recovered)

	assert.Equal(t, "1704888000", recovered.Identity.GetValue("auth_time"))
	assert.Equal(t, "true", recovered.Identity.GetValue("verified"))
}

func TestValidateRejectsTokenWithoutUsageClaim(t *testing.T) {
	config := newTestConfig(nil)
	engine := newTestEngine(t, config)

	// Correctly signed and within the trust anchor, but minted outside the
	// issuance pipeline without a usage tag. No kind may accept it.
	tokenString := foreignSignedToken(t, config, jwt.MapClaims{"sub": "peter"})

	recovered, err := engine.ValidateAccessToken(context.Background(), nil, tokenString)
	require.NoError(t, err)
	assert.Nil(t, recovered)

	recovered, err = engine.ValidateIDToken(context.Background(), nil, tokenString)
	require.NoError(t, err)
	assert.Nil(t, recovered)
}

func TestRefreshAndCodeTokensAreOpaqueByDefault(t *testing.T) {
	engine := newTestEngine(t, newTestConfig(nil))

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")

	refreshToken, err := engine.GenerateRefreshToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(refreshToken, "otk_rt_"))

	recovered, err := engine.ValidateRefreshToken(context.Background(), nil, refreshToken)
	require.NoError(t, err)
	require.NotNil(t, recovered)
	assert.Equal(t, tokenengine.UsageRefreshToken, recovered.Usage)
}

func TestIssueWithoutAnyBackendYieldsAbsentToken(t *testing.T) {
	engine := tokenengine.NewEngine(newTestConfig(nil), nil)
	engine.AccessTokenBackend = nil
	engine.IDTokenBackend = nil

	grant := tokenengine.NewGrant()
	grant.Identity.Set("sub", "peter")

	tokenString, err := engine.GenerateAccessToken(context.Background(), &tokenengine.Request{ClientID: "app-a"}, nil, grant)
	require.NoError(t, err)
	assert.Empty(t, tokenString)

	recovered, err := engine.ValidateAccessToken(context.Background(), nil, "anything")
	require.NoError(t, err)
	assert.Nil(t, recovered)
}
