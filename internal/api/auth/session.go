// Package auth resolves the session cookie into a request identity and
// provides the gin middleware guarding authenticated routes.
package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	quillauth "github.com/quillhq/quill/internal/auth"
)

const (
	sessionKeyUserID    = "user_id"
	sessionKeyEmail     = "user_email"
	sessionKeyFirstName = "user_first_name"
	sessionKeyLastName  = "user_last_name"
	sessionKeyIsAdmin   = "user_is_admin"
	sessionKeySessionID = "session_id"

	identityKey = "identity"
)

// SaveSession binds the user snapshot to the session cookie, transitioning
// the request context from Anonymous to Authenticated.
func SaveSession(c *gin.Context, user quillauth.UserInfo) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyEmail, user.Email)
	session.Set(sessionKeyFirstName, user.FirstName)
	session.Set(sessionKeyLastName, user.LastName)
	session.Set(sessionKeyIsAdmin, user.IsAdmin)
	session.Set(sessionKeySessionID, uuid.NewString())
	return session.Save()
}

// ClearSession invalidates the current session. The old cookie resolves to
// Anonymous from then on.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// Identity resolves the session to an identity on every request and stores
// it on the gin context. Resolution is read-only; a missing or corrupt
// session yields Anonymous.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, resolveIdentity(c))
	}
}

func resolveIdentity(c *gin.Context) quillauth.Identity {
	session := sessions.Default(c)

	userID, ok := session.Get(sessionKeyUserID).(uint)
	if !ok {
		return quillauth.Anonymous()
	}
	email, ok := session.Get(sessionKeyEmail).(string)
	if !ok {
		return quillauth.Anonymous()
	}
	firstName, _ := session.Get(sessionKeyFirstName).(string)
	lastName, _ := session.Get(sessionKeyLastName).(string)
	isAdmin, _ := session.Get(sessionKeyIsAdmin).(bool)

	return quillauth.Authenticated(quillauth.UserInfo{
		ID:        userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		IsAdmin:   isAdmin,
	})
}

// CurrentIdentity returns the identity resolved by the Identity middleware.
func CurrentIdentity(c *gin.Context) quillauth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(quillauth.Identity); ok {
			return identity
		}
	}
	return quillauth.Anonymous()
}

// RequireAuth aborts anonymous requests with a fixed forbidden response.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAuthenticated() {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
