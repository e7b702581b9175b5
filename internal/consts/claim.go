package consts

// Registered Claim strings. See https://www.iana.org/assignments/jwt/jwt.xhtml.
const (
	ClaimJWTID                               = "jti"
	ClaimIssuer                              = "iss"
	ClaimSubject                             = "sub"
	ClaimAudience                            = "aud"
	ClaimIssuedAt                            = "iat"
	ClaimNotBefore                           = "nbf"
	ClaimExpirationTime                      = "exp"
	ClaimAuthenticationTime                  = "auth_time"
	ClaimAuthenticationContextClassReference = "acr"
	ClaimAuthenticationMethodsReference      = "amr"
	ClaimAuthorizedParty                     = "azp"
	ClaimScope                               = "scope"
	ClaimNonce                               = "nonce"
	ClaimAccessTokenHash                     = "at_hash"
	ClaimCodeHash                            = "c_hash"
	ClaimActor                               = "act"
)

// Claim strings specific to this token engine. The usage claim tags a signed
// token with the kind it was minted for, the name identifier claim is the raw
// subject claim before it has been folded into 'sub'.
const (
	ClaimUsage                = "usage"
	ClaimNameIdentifier       = "name_id"
	ClaimConfidentialityLevel = "confidentiality_level"
)
