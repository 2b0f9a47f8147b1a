package auth

// UserInfo is the session snapshot of an authenticated user.
type UserInfo struct {
	ID        uint
	Email     string
	FirstName string
	LastName  string
	IsAdmin   bool
}

// Identity is the resolved actor for a request: either Anonymous or an
// authenticated user snapshot. The zero value is Anonymous.
type Identity struct {
	user *UserInfo
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns an identity for the given user snapshot.
func Authenticated(user UserInfo) Identity {
	return Identity{user: &user}
}

// IsAuthenticated reports whether the identity belongs to a logged-in user.
func (i Identity) IsAuthenticated() bool {
	return i.user != nil
}

// IsAdmin reports whether the identity belongs to an administrator.
func (i Identity) IsAdmin() bool {
	return i.user != nil && i.user.IsAdmin
}

// User returns the user snapshot, or false for an anonymous identity.
func (i Identity) User() (UserInfo, bool) {
	if i.user == nil {
		return UserInfo{}, false
	}
	return *i.user, true
}
