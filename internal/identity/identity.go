// Package identity carries the acting user through permission checks and
// audit stamping. An Identity is resolved exactly once per request at the
// HTTP boundary; business logic receives it as an explicit parameter and
// never re-resolves it.
package identity

import "strings"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleUser       = "user"
)

// adminRoles are the role strings granting edit rights regardless of the
// creator/assignee relationship. Matching is case-insensitive.
var adminRoles = map[string]struct{}{
	"admin":       {},
	"superadmin":  {},
	"super_admin": {},
}

type Identity struct {
	UserID      string
	AuthID      string
	DisplayName string
	Email       string
	Role        string
}

// Unknown reports whether the identity carries no usable fields, e.g. a
// request without a session. Unknown identities have no edit rights
// anywhere except where a role explicitly grants them.
func (id Identity) Unknown() bool {
	return id.UserID == "" && id.AuthID == "" && id.DisplayName == "" && id.Email == ""
}

func (id Identity) IsAdmin() bool {
	_, ok := adminRoles[strings.ToLower(strings.TrimSpace(id.Role))]
	return ok
}

// MatchSet is a set of normalized candidate strings used for loose
// identity comparison: legacy records may reference a user by id, auth
// provider id, display name, or email, and any one match is accepted.
// This is a tolerance for inconsistent historical data, not a security
// boundary; server-side authorization must not rely on it alone.
type MatchSet map[string]struct{}

func (id Identity) MatchSet() MatchSet {
	set := MatchSet{}
	for _, candidate := range []string{id.UserID, id.AuthID, id.DisplayName, id.Email} {
		if normalized := normalize(candidate); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return set
}

// HasAny reports whether any of the given reference strings is a member
// of the set.
func (m MatchSet) HasAny(references ...string) bool {
	for _, ref := range references {
		if normalized := normalize(ref); normalized != "" {
			if _, ok := m[normalized]; ok {
				return true
			}
		}
	}
	return false
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
