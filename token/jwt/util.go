package jwt

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"hash"
	"regexp"
	"strconv"

	"github.com/tidwall/gjson"
)

var (
	reSignedJWT    = regexp.MustCompile(`^[-_A-Za-z0-9]+\.[-_A-Za-z0-9]+\.([-_A-Za-z0-9]+)?$`)
	reEncryptedJWT = regexp.MustCompile(`^[-_A-Za-z0-9]+\.[-_A-Za-z0-9]+\.[-_A-Za-z0-9]+\.[-_A-Za-z0-9]+\.[-_A-Za-z0-9]+$`)
)

// IsSignedToken returns true if a given token string meets the basic criteria
// of a compact serialized signed JWT.
func IsSignedToken(tokenString string) (signed bool) {
	return reSignedJWT.MatchString(tokenString)
}

// IsEncryptedToken returns true if a given token string meets the basic
// criteria of a compact serialized encrypted JWT.
func IsEncryptedToken(tokenString string) (encrypted bool) {
	return reEncryptedJWT.MatchString(tokenString)
}

// PeekHeaderAlgorithm decodes the protected header of a compact serialized
// JWT without any validation and returns its 'alg' value. Useful for
// diagnostics only, the value is attacker controlled.
func PeekHeaderAlgorithm(tokenString string) (alg string) {
	if !IsSignedToken(tokenString) && !IsEncryptedToken(tokenString) {
		return ""
	}

	var i int

	for i = 0; i < len(tokenString); i++ {
		if tokenString[i] == '.' {
			break
		}
	}

	header, err := base64.RawURLEncoding.DecodeString(tokenString[:i])
	if err != nil {
		return ""
	}

	return gjson.GetBytes(header, JSONWebTokenHeaderAlgorithm).String()
}

// HalfHash computes the digest of the ASCII bytes of value using the hash
// associated with the given JOSE signing algorithm and returns the left half
// of the digest encoded as unpadded URL-safe base64. This is the c_hash /
// at_hash binding value defined by OpenID Connect Core.
func HalfHash(alg string, value string) (sum string) {
	var h hash.Hash

	if len(alg) > 2 {
		if bits, err := strconv.Atoi(alg[2:]); err == nil {
			switch bits / 8 {
			case sha512.Size:
				h = sha512.New()
			case sha512.Size384:
				h = sha512.New384()
			case sha512.Size256:
				h = sha256.New()
			}
		}
	}

	if h == nil {
		h = sha256.New()
	}

	// The hash.Hash Write contract never returns an error.
	h.Write([]byte(value))

	digest := h.Sum(nil)

	return base64.RawURLEncoding.EncodeToString(digest[:len(digest)/2])
}
