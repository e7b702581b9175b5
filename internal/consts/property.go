package consts

// Grant property keys. Multi-valued properties (resources, presenters,
// audiences, scopes) are stored space delimited.
const (
	PropertyIssuedAt             = "issued_at"
	PropertyExpiresAt            = "expires_at"
	PropertyLifespan             = "lifespan"
	PropertyNonce                = "nonce"
	PropertyConfidentialityLevel = "confidentiality_level"
	PropertyResources            = "resources"
	PropertyPresenters           = "presenters"
	PropertyAudiences            = "audiences"
	PropertyScopes               = "scopes"
	PropertyAuthenticationTime   = "auth_time"
	PropertyACR                  = "acr"
	PropertyAMR                  = "amr"
)

// Destination tags restricting which token kind may expose a claim.
const (
	DestinationAccessToken = "access_token"
	DestinationIDToken     = "id_token"
)
