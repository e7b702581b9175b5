// Package opaque implements the opaque token format: a grant serialized to
// JSON and sealed inside a direct mode JWE under a key derived from the
// configured secret. The resulting strings are only reversible by this
// server.
package opaque

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-jose/go-jose/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"

	"github.com/oidckit/tokenengine"
)

// kdfInfo versions the key derivation. Bump it together with envelopeVersion
// when the envelope layout changes incompatibly.
const (
	kdfInfo         = "tokenengine/opaque/v1"
	envelopeVersion = 1

	tokenPrefixFormat = "otk_%s_"
)

var prefixParts = map[tokenengine.Usage]string{
	tokenengine.UsageAuthorizeCode: "ac",
	tokenengine.UsageAccessToken:   "at",
	tokenengine.UsageIDToken:       "it",
	tokenengine.UsageRefreshToken:  "rt",
}

type envelope struct {
	Version int                `json:"v"`
	Grant   *tokenengine.Grant `json:"grant"`
}

// Protector seals and unseals grants with AES-256-GCM under an HKDF derived
// key.
type Protector struct {
	key []byte
}

// New derives the protection key from secret. The secret must carry at least
// 32 bytes of entropy.
func New(secret []byte) (*Protector, error) {
	if len(secret) < 32 {
		return nil, errors.New("opaque token secret must be at least 32 bytes")
	}

	key := make([]byte, 32)

	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(kdfInfo)), key); err != nil {
		return nil, errors.Wrap(err, "error occurred deriving the opaque token key")
	}

	return &Protector{key: key}, nil
}

// Protect serializes the grant and returns the sealed token string, prefixed
// with the grant's usage part so operators can tell token kinds apart.
func (p *Protector) Protect(ctx context.Context, grant *tokenengine.Grant) (tokenString string, err error) {
	if grant == nil {
		return "", errors.New("cannot protect a nil grant")
	}

	plaintext, err := json.Marshal(&envelope{Version: envelopeVersion, Grant: grant})
	if err != nil {
		return "", errors.Wrap(err, "error occurred serializing the grant")
	}

	encrypter, err := jose.NewEncrypter(jose.A256GCM, jose.Recipient{Algorithm: jose.DIRECT, Key: p.key}, nil)
	if err != nil {
		return "", errors.Wrap(err, "error occurred constructing the grant encrypter")
	}

	jwe, err := encrypter.Encrypt(plaintext)
	if err != nil {
		return "", errors.Wrap(err, "error occurred sealing the grant")
	}

	if tokenString, err = jwe.CompactSerialize(); err != nil {
		return "", errors.Wrap(err, "error occurred serializing the sealed grant")
	}

	return p.prependPrefix(tokenString, grant.Usage), nil
}

// Unprotect reverses Protect. Any tampering with the token string surfaces
// as an error from the authenticated decryption.
func (p *Protector) Unprotect(ctx context.Context, tokenString string) (*tokenengine.Grant, error) {
	raw := p.trimPrefix(tokenString)

	jwe, err := jose.ParseEncryptedCompact(raw, []jose.KeyAlgorithm{jose.DIRECT}, []jose.ContentEncryption{jose.A256GCM})
	if err != nil {
		return nil, errors.Wrap(err, "token is not a sealed grant")
	}

	plaintext, err := jwe.Decrypt(p.key)
	if err != nil {
		return nil, errors.Wrap(err, "token could not be unsealed")
	}

	var env envelope

	if err = json.Unmarshal(plaintext, &env); err != nil {
		return nil, errors.Wrap(err, "sealed grant payload is malformed")
	}

	if env.Version != envelopeVersion {
		return nil, errors.Errorf("sealed grant has unsupported envelope version %d", env.Version)
	}

	if env.Grant == nil {
		return nil, errors.New("sealed grant payload is empty")
	}

	return env.Grant, nil
}

func (p *Protector) prependPrefix(tokenString string, usage tokenengine.Usage) string {
	part, ok := prefixParts[usage]
	if !ok {
		return tokenString
	}

	return fmt.Sprintf(tokenPrefixFormat, part) + tokenString
}

func (p *Protector) trimPrefix(tokenString string) string {
	for _, part := range prefixParts {
		if prefix := fmt.Sprintf(tokenPrefixFormat, part); strings.HasPrefix(tokenString, prefix) {
			return tokenString[len(prefix):]
		}
	}

	return tokenString
}

var _ tokenengine.Protector = (*Protector)(nil)
