package jwt

const (
	ClaimIssuer         = "iss"
	ClaimSubject        = "sub"
	ClaimAudience       = "aud"
	ClaimIssuedAt       = "iat"
	ClaimNotBefore      = "nbf"
	ClaimExpirationTime = "exp"
)

const (
	JSONWebTokenHeaderKeyIdentifier = "kid"
	JSONWebTokenHeaderAlgorithm     = "alg"
	JSONWebTokenHeaderType          = "typ"
	JSONWebTokenTypeJWT             = "JWT"
)
