package jwt

import (
	"encoding/json"
	"time"
)

// MapClaims is a simple map based claims structure.
type MapClaims map[string]any

// GetIssuer returns the 'iss' claim.
func (m MapClaims) GetIssuer() string {
	return m.String(ClaimIssuer)
}

// GetSubject returns the 'sub' claim.
func (m MapClaims) GetSubject() string {
	return m.String(ClaimSubject)
}

// GetAudience returns the 'aud' claim as a slice. A single string audience is
// returned as a one element slice.
func (m MapClaims) GetAudience() []string {
	return m.Strings(ClaimAudience)
}

// GetExpirationTime returns the 'exp' claim as a time.Time, or the zero time
// when absent or malformed.
func (m MapClaims) GetExpirationTime() time.Time {
	return m.Time(ClaimExpirationTime)
}

// GetIssuedAt returns the 'iat' claim as a time.Time, or the zero time when
// absent or malformed.
func (m MapClaims) GetIssuedAt() time.Time {
	return m.Time(ClaimIssuedAt)
}

// String returns the named claim provided it's a string value.
func (m MapClaims) String(name string) (value string) {
	value, _ = m[name].(string)

	return value
}

// Strings returns the named claim as a string slice, accepting both the
// single string and the list form JSON deserialization produces.
func (m MapClaims) Strings(name string) (values []string) {
	switch v := m[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	case []any:
		for _, raw := range v {
			if s, ok := raw.(string); ok {
				values = append(values, s)
			}
		}

		return values
	default:
		return nil
	}
}

// Time returns the named claim as a UTC time.Time, handling the numeric
// forms a NumericDate deserializes to.
func (m MapClaims) Time(name string) time.Time {
	switch v := m[name].(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC()
	case int64:
		return time.Unix(v, 0).UTC()
	case json.Number:
		if sec, err := v.Int64(); err == nil {
			return time.Unix(sec, 0).UTC()
		}

		return time.Time{}
	case time.Time:
		return v.UTC()
	default:
		return time.Time{}
	}
}
