package tokenengine

// Request carries the protocol request details the pipelines care about. The
// surrounding endpoint layer owns request parsing; this is the already
// parsed slice of it.
type Request struct {
	// ClientID is the identifier of the requesting client application. It is
	// the default presenter of every issued token and the default audience
	// of ID tokens.
	ClientID string

	// GrantType is the grant_type form parameter of token requests, empty
	// for authorization requests.
	GrantType string

	// Nonce is the nonce of the original authorization request, when one was
	// sent.
	Nonce string
}

// Response is the protocol response assembled so far. The ID token pipeline
// reads the sibling tokens out of it to compute the binding hash claims, so
// the caller must issue codes and access tokens before the ID token that
// references them.
type Response struct {
	AuthorizationCode string
	AccessToken       string
	IdentityToken     string
	RefreshToken      string
}
