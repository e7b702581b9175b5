package jwt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/pkg/errors"
)

// Validation errors returned by the DefaultBackend. Callers are expected to
// treat all of them as a rejection of the presented token, the distinction
// exists for diagnostics.
var (
	ErrTokenMalformed         = errors.New("token is malformed")
	ErrTokenSignatureMismatch = errors.New("token signature mismatch")
	ErrTokenClaimInvalid      = errors.New("token has an invalid claim")
	ErrTokenExpired           = errors.New("token is expired")
)

// SignatureAlgorithms are the JWS algorithms accepted when parsing tokens.
var SignatureAlgorithms = []jose.SignatureAlgorithm{
	jose.RS256, jose.RS384, jose.RS512,
	jose.PS256, jose.PS384, jose.PS512,
	jose.ES256, jose.ES384, jose.ES512,
	jose.HS256, jose.HS384, jose.HS512,
}

// KeyEncryptionAlgorithms are the JWE key algorithms accepted when parsing
// encrypted tokens.
var KeyEncryptionAlgorithms = []jose.KeyAlgorithm{
	jose.RSA_OAEP, jose.RSA_OAEP_256,
	jose.ECDH_ES, jose.ECDH_ES_A128KW, jose.ECDH_ES_A192KW, jose.ECDH_ES_A256KW,
	jose.A128KW, jose.A192KW, jose.A256KW,
	jose.A128GCMKW, jose.A192GCMKW, jose.A256GCMKW,
	jose.DIRECT,
}

// ContentEncryptionAlgorithms are the JWE content encryption algorithms
// accepted when parsing encrypted tokens.
var ContentEncryptionAlgorithms = []jose.ContentEncryption{
	jose.A128CBC_HS256, jose.A192CBC_HS384, jose.A256CBC_HS512,
	jose.A128GCM, jose.A192GCM, jose.A256GCM,
}

// Window is the validity window of a token.
type Window struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// EncodeOptions configure the production of a signed (and optionally
// encrypted) token.
type EncodeOptions struct {
	// Issuer is written to the 'iss' claim unless the claim set already
	// carries one.
	Issuer string

	// SigningKey signs the token. The key algorithm selects the JWS
	// algorithm, defaulting to RS256.
	SigningKey jose.JSONWebKey

	// EncryptionKey, when present, nests the signed token inside a JWE.
	EncryptionKey *jose.JSONWebKey

	// Window is written to the 'iat' and 'exp' claims unless the claim set
	// already carries them.
	Window Window
}

// ValidateOptions configure the validation of a token string.
type ValidateOptions struct {
	// Issuer is compared against the 'iss' claim when non-empty.
	Issuer string

	// TrustedKeys are tried in order until one verifies the signature. This
	// deliberately accepts several keys so rotated-out keys keep validating
	// tokens they signed.
	TrustedKeys []jose.JSONWebKey

	// DecryptionKey unwraps encrypted tokens.
	DecryptionKey *jose.JSONWebKey

	// CheckAudience enables the audience check against Audience.
	CheckAudience bool
	Audience      []string

	// CheckLifetime enables the expiry check against Now.
	CheckLifetime bool
	Now           time.Time
}

// DefaultBackend produces and validates self-contained signed tokens using
// compact JOSE serialization.
type DefaultBackend struct{}

func NewDefaultBackend() *DefaultBackend {
	return &DefaultBackend{}
}

// CanRead returns true when the token string is syntactically a compact
// serialized JWS or JWE.
func (b *DefaultBackend) CanRead(tokenString string) bool {
	return IsSignedToken(tokenString) || IsEncryptedToken(tokenString)
}

// Encode signs the claim set and returns the compact serialized token,
// nesting it inside a JWE when an encryption key is configured.
func (b *DefaultBackend) Encode(ctx context.Context, claims MapClaims, opts EncodeOptions) (tokenString string, err error) {
	if opts.SigningKey.Key == nil {
		return "", errors.New("no signing key material was provided")
	}

	alg := jose.SignatureAlgorithm(opts.SigningKey.Algorithm)
	if alg == "" {
		alg = jose.RS256
	}

	if opts.Issuer != "" {
		if _, ok := claims[ClaimIssuer]; !ok {
			claims[ClaimIssuer] = opts.Issuer
		}
	}

	if !opts.Window.IssuedAt.IsZero() {
		if _, ok := claims[ClaimIssuedAt]; !ok {
			claims[ClaimIssuedAt] = opts.Window.IssuedAt.Unix()
		}
	}

	if !opts.Window.ExpiresAt.IsZero() {
		if _, ok := claims[ClaimExpirationTime]; !ok {
			claims[ClaimExpirationTime] = opts.Window.ExpiresAt.Unix()
		}
	}

	signerOpts := (&jose.SignerOptions{}).WithType(JSONWebTokenTypeJWT)

	if opts.SigningKey.KeyID != "" {
		signerOpts = signerOpts.WithHeader(JSONWebTokenHeaderKeyIdentifier, opts.SigningKey.KeyID)
	}

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: alg, Key: opts.SigningKey.Key}, signerOpts)
	if err != nil {
		return "", errors.Wrap(err, "error occurred constructing the jwt signer")
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Wrap(err, "error occurred marshalling the jwt claims")
	}

	jws, err := signer.Sign(payload)
	if err != nil {
		return "", errors.Wrap(err, "error occurred signing the jwt")
	}

	if tokenString, err = jws.CompactSerialize(); err != nil {
		return "", errors.Wrap(err, "error occurred serializing the jws")
	}

	if opts.EncryptionKey == nil {
		return tokenString, nil
	}

	return b.encrypt(tokenString, opts.EncryptionKey)
}

func (b *DefaultBackend) encrypt(tokenString string, key *jose.JSONWebKey) (string, error) {
	alg := jose.KeyAlgorithm(key.Algorithm)
	if alg == "" {
		alg = jose.DIRECT
	}

	encrypterOpts := (&jose.EncrypterOptions{}).WithType(JSONWebTokenTypeJWT).WithContentType(JSONWebTokenTypeJWT)

	encrypter, err := jose.NewEncrypter(contentEncryptionForKey(alg, key), jose.Recipient{Algorithm: alg, Key: key.Key, KeyID: key.KeyID}, encrypterOpts)
	if err != nil {
		return "", errors.Wrap(err, "error occurred constructing the jwe encrypter")
	}

	jwe, err := encrypter.Encrypt([]byte(tokenString))
	if err != nil {
		return "", errors.Wrap(err, "error occurred encrypting the jws")
	}

	out, err := jwe.CompactSerialize()
	if err != nil {
		return "", errors.Wrap(err, "error occurred serializing the jwe")
	}

	return out, nil
}

// contentEncryptionForKey selects a content encryption matching the strength
// of the key algorithm. Direct encryption uses the key as the content key, so
// there the choice follows the key length.
func contentEncryptionForKey(alg jose.KeyAlgorithm, key *jose.JSONWebKey) jose.ContentEncryption {
	if alg == jose.DIRECT {
		if k, ok := key.Key.([]byte); ok {
			switch len(k) {
			case 48:
				return jose.A192CBC_HS384
			case 64:
				return jose.A256CBC_HS512
			}
		}

		return jose.A128CBC_HS256
	}

	switch alg {
	case jose.A128KW, jose.A128GCMKW, jose.ECDH_ES_A128KW:
		return jose.A128CBC_HS256
	case jose.A192KW, jose.A192GCMKW, jose.ECDH_ES_A192KW:
		return jose.A192CBC_HS384
	default:
		return jose.A256CBC_HS512
	}
}

// Validate parses the token string, verifies its signature against the
// trusted keys, optionally checks audience and lifetime, and returns the
// claim set with the token's validity window.
func (b *DefaultBackend) Validate(ctx context.Context, tokenString string, opts ValidateOptions) (claims MapClaims, window Window, err error) {
	raw := tokenString

	if IsEncryptedToken(raw) {
		if raw, err = b.decrypt(raw, opts.DecryptionKey); err != nil {
			return nil, Window{}, err
		}
	}

	jws, err := jose.ParseSigned(raw, SignatureAlgorithms)
	if err != nil {
		return nil, Window{}, errors.Wrapf(ErrTokenMalformed, "error parsing compact serialized jws: %v", err)
	}

	payload, err := b.verify(jws, opts.TrustedKeys)
	if err != nil {
		return nil, Window{}, err
	}

	claims = MapClaims{}

	if err = json.Unmarshal(payload, &claims); err != nil {
		return nil, Window{}, errors.Wrapf(ErrTokenMalformed, "error unmarshalling the jwt claims: %v", err)
	}

	if opts.Issuer != "" && claims.GetIssuer() != opts.Issuer {
		return nil, Window{}, errors.Wrapf(ErrTokenClaimInvalid, "token has issuer '%s' but issuer '%s' is required", claims.GetIssuer(), opts.Issuer)
	}

	window = Window{IssuedAt: claims.GetIssuedAt(), ExpiresAt: claims.GetExpirationTime()}

	if opts.CheckLifetime {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}

		if !window.ExpiresAt.IsZero() && window.ExpiresAt.Before(now.UTC()) {
			return nil, Window{}, errors.Wrapf(ErrTokenExpired, "token expired at '%s'", window.ExpiresAt)
		}
	}

	if opts.CheckAudience && !audienceMatches(claims.GetAudience(), opts.Audience) {
		return nil, Window{}, errors.Wrap(ErrTokenClaimInvalid, "token does not carry any of the required audiences")
	}

	return claims, window, nil
}

func (b *DefaultBackend) decrypt(raw string, key *jose.JSONWebKey) (string, error) {
	if key == nil {
		return "", errors.Wrap(ErrTokenMalformed, "token is encrypted but no decryption key is configured")
	}

	jwe, err := jose.ParseEncryptedCompact(raw, KeyEncryptionAlgorithms, ContentEncryptionAlgorithms)
	if err != nil {
		return "", errors.Wrapf(ErrTokenMalformed, "error parsing compact serialized jwe: %v", err)
	}

	plaintext, err := jwe.Decrypt(key.Key)
	if err != nil {
		return "", errors.Wrapf(ErrTokenSignatureMismatch, "error decrypting the jwe: %v", err)
	}

	if !IsSignedToken(string(plaintext)) {
		return "", errors.Wrap(ErrTokenMalformed, "decrypted jwe payload is not a compact serialized jws")
	}

	return string(plaintext), nil
}

func (b *DefaultBackend) verify(jws *jose.JSONWebSignature, keys []jose.JSONWebKey) (payload []byte, err error) {
	for _, key := range keys {
		if payload, err = jws.Verify(verificationKey(key)); err == nil {
			return payload, nil
		}
	}

	return nil, errors.Wrap(ErrTokenSignatureMismatch, "token could not be verified with any of the trusted keys")
}

// verificationKey returns the public half of an asymmetric key. Symmetric
// keys are returned as is.
func verificationKey(key jose.JSONWebKey) any {
	if _, ok := key.Key.([]byte); ok {
		return key.Key
	}

	if key.IsPublic() {
		return key.Key
	}

	return key.Public().Key
}

func audienceMatches(aud []string, required []string) bool {
	for _, cmp := range required {
		for _, a := range aud {
			if a == cmp {
				return true
			}
		}
	}

	return false
}
