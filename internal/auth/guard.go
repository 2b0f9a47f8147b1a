package auth

// Decision is the outcome of an authorization check. It is a plain value so
// callers decide how a denial surfaces; the guards themselves never abort
// control flow.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Allowed reports whether the decision permits the operation.
func (d Decision) Allowed() bool {
	return d == Allow
}

// RequireAdmin allows only authenticated administrators.
func RequireAdmin(identity Identity) Decision {
	if identity.IsAdmin() {
		return Allow
	}
	return Deny
}

// RequireOwnerOrAdmin allows the resource owner or any administrator.
// Ownership and admin rights are independently sufficient. Callers must
// resolve the resource before consulting the guard; a missing resource is a
// not-found condition, never a denial.
func RequireOwnerOrAdmin(identity Identity, ownerID uint) Decision {
	user, ok := identity.User()
	if !ok {
		return Deny
	}
	if user.ID == ownerID || user.IsAdmin {
		return Allow
	}
	return Deny
}
