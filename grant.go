package tokenengine

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohae/deepcopy"

	"github.com/oidckit/tokenengine/internal/consts"
)

// Usage is the token kind a grant was minted for. It is set once at issuance
// and re-checked on every successful validation.
type Usage string

const (
	UsageAuthorizeCode Usage = "authorization_code"
	UsageAccessToken   Usage = "access_token"
	UsageIDToken       Usage = "id_token"
	UsageRefreshToken  Usage = "refresh_token"
)

// Grant is the unit of protocol state carried by every token: an identity
// claim set, a property bag and the usage tag. A grant is constructed fresh
// for each issuance and reconstructed fresh for each validation, it is never
// shared across requests.
type Grant struct {
	// ID is a random identifier assigned once per issuance. It is carried as
	// the 'jti' claim on signed tokens and exists for correlation and
	// de-duplication, it is not a capability.
	ID string `json:"id"`

	Usage Usage `json:"usage"`

	Identity Identity `json:"identity"`

	Properties map[string]string `json:"properties,omitempty"`
}

// NewGrant returns an empty grant with a fresh identifier.
func NewGrant() *Grant {
	return &Grant{ID: uuid.NewString(), Properties: map[string]string{}}
}

// Clone returns a deep copy of the grant.
func (g *Grant) Clone() *Grant {
	if g == nil {
		return nil
	}

	return deepcopy.Copy(g).(*Grant)
}

// GetProperty returns the named property value, or the empty string.
func (g *Grant) GetProperty(key string) string {
	return g.Properties[key]
}

// SetProperty sets the named property, removing it when value is empty.
func (g *Grant) SetProperty(key, value string) {
	if g.Properties == nil {
		g.Properties = map[string]string{}
	}

	if value == "" {
		delete(g.Properties, key)

		return
	}

	g.Properties[key] = value
}

func (g *Grant) getTime(key string) time.Time {
	raw := g.GetProperty(key)
	if raw == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return t.UTC()
}

func (g *Grant) setTime(key string, t time.Time) {
	if t.IsZero() {
		g.SetProperty(key, "")

		return
	}

	g.SetProperty(key, t.UTC().Format(time.RFC3339))
}

// GetIssuedAt returns the grant's issued timestamp, or the zero time.
func (g *Grant) GetIssuedAt() time.Time {
	return g.getTime(consts.PropertyIssuedAt)
}

func (g *Grant) SetIssuedAt(t time.Time) {
	g.setTime(consts.PropertyIssuedAt, t)
}

// GetExpiresAt returns the grant's expiry timestamp, or the zero time.
func (g *Grant) GetExpiresAt() time.Time {
	return g.getTime(consts.PropertyExpiresAt)
}

func (g *Grant) SetExpiresAt(t time.Time) {
	g.setTime(consts.PropertyExpiresAt, t)
}

// GetLifespan returns the per-grant lifespan override in effect, if any.
func (g *Grant) GetLifespan() (lifespan time.Duration, ok bool) {
	raw := g.GetProperty(consts.PropertyLifespan)
	if raw == "" {
		return 0, false
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds <= 0 {
		return 0, false
	}

	return time.Duration(seconds) * time.Second, true
}

// SetLifespan records a per-grant lifespan override, rounded down to whole
// seconds.
func (g *Grant) SetLifespan(lifespan time.Duration) {
	g.SetProperty(consts.PropertyLifespan, strconv.FormatInt(int64(lifespan/time.Second), 10))
}

func (g *Grant) GetNonce() string {
	return g.GetProperty(consts.PropertyNonce)
}

func (g *Grant) SetNonce(nonce string) {
	g.SetProperty(consts.PropertyNonce, nonce)
}

func (g *Grant) GetConfidentialityLevel() string {
	return g.GetProperty(consts.PropertyConfidentialityLevel)
}

func (g *Grant) SetConfidentialityLevel(level string) {
	g.SetProperty(consts.PropertyConfidentialityLevel, level)
}

func (g *Grant) getList(key string) Arguments {
	raw := g.GetProperty(key)
	if raw == "" {
		return nil
	}

	return strings.Fields(raw)
}

func (g *Grant) setList(key string, values []string) {
	g.SetProperty(key, strings.Join(values, " "))
}

// GetResources returns the protected resources the grant was issued for.
func (g *Grant) GetResources() Arguments {
	return g.getList(consts.PropertyResources)
}

func (g *Grant) SetResources(resources ...string) {
	g.setList(consts.PropertyResources, resources)
}

// GetPresenters returns the parties allowed to present tokens minted from
// this grant.
func (g *Grant) GetPresenters() Arguments {
	return g.getList(consts.PropertyPresenters)
}

func (g *Grant) SetPresenters(presenters ...string) {
	g.setList(consts.PropertyPresenters, presenters)
}

// GetAudiences returns the audiences of the grant.
func (g *Grant) GetAudiences() Arguments {
	return g.getList(consts.PropertyAudiences)
}

func (g *Grant) SetAudiences(audiences ...string) {
	g.setList(consts.PropertyAudiences, audiences)
}

// GetScopes returns the scopes of the grant.
func (g *Grant) GetScopes() Arguments {
	return g.getList(consts.PropertyScopes)
}

func (g *Grant) SetScopes(scopes ...string) {
	g.setList(consts.PropertyScopes, scopes)
}
