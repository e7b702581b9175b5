package tokenengine

import (
	"github.com/oidckit/tokenengine/internal/consts"
)

// Claim is a typed key/value fact about a subject. Destinations restrict
// which token kinds may expose the claim; a claim with no destinations is
// only ever carried by opaque tokens.
type Claim struct {
	Type         string    `json:"type"`
	Value        string    `json:"value"`
	Destinations Arguments `json:"destinations,omitempty"`
}

// HasDestination returns true when the claim is declared for the given
// destination tag.
func (c Claim) HasDestination(destination string) bool {
	return StringInSlice(destination, c.Destinations)
}

func (c Claim) clone() Claim {
	out := Claim{Type: c.Type, Value: c.Value}

	if len(c.Destinations) > 0 {
		out.Destinations = append(Arguments(nil), c.Destinations...)
	}

	return out
}

// Identity is an ordered claim set, optionally carrying an actor identity
// when the grant represents delegation.
type Identity struct {
	Claims []Claim   `json:"claims,omitempty"`
	Actor  *Identity `json:"actor,omitempty"`
}

// Get returns the first claim of the given type.
func (i *Identity) Get(claimType string) (claim Claim, ok bool) {
	for _, c := range i.Claims {
		if c.Type == claimType {
			return c, true
		}
	}

	return Claim{}, false
}

// GetValue returns the value of the first claim of the given type, or the
// empty string.
func (i *Identity) GetValue(claimType string) string {
	c, _ := i.Get(claimType)

	return c.Value
}

// Set appends a claim with the given destinations, replacing any existing
// claims of the same type.
func (i *Identity) Set(claimType, value string, destinations ...string) {
	i.Remove(claimType)

	c := Claim{Type: claimType, Value: value}

	if len(destinations) > 0 {
		c.Destinations = destinations
	}

	i.Claims = append(i.Claims, c)
}

// Remove drops every claim of the given type.
func (i *Identity) Remove(claimType string) {
	claims := i.Claims[:0]

	for _, c := range i.Claims {
		if c.Type != claimType {
			claims = append(claims, c)
		}
	}

	i.Claims = claims
}

// Subject resolves the canonical subject: the 'sub' claim when present,
// otherwise the raw name identifier claim.
func (i *Identity) Subject() string {
	if c, ok := i.Get(consts.ClaimSubject); ok {
		return c.Value
	}

	return i.GetValue(consts.ClaimNameIdentifier)
}
