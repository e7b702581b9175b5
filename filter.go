package tokenengine

import (
	"github.com/oidckit/tokenengine/internal/consts"
)

// filterIdentity returns an owned copy of identity reduced to the claims
// whose destinations include the given tag. The subject and name identifier
// claims are kept unconditionally so a subject is never silently dropped.
// An actor identity is filtered with the same rule, recursively. With an
// empty destination the identity is copied without filtering.
func filterIdentity(identity *Identity, destination string) Identity {
	out := Identity{}

	for _, c := range identity.Claims {
		if destination != "" && c.Type != consts.ClaimSubject && c.Type != consts.ClaimNameIdentifier && !c.HasDestination(destination) {
			continue
		}

		out.Claims = append(out.Claims, c.clone())
	}

	if identity.Actor != nil {
		actor := filterIdentity(identity.Actor, destination)
		out.Actor = &actor
	}

	return out
}
