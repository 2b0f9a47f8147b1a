package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	apiauth "github.com/quillhq/quill/internal/api/auth"
	"github.com/quillhq/quill/internal/api/models"
	"github.com/quillhq/quill/internal/auth"
	"github.com/quillhq/quill/internal/blog"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/database"
	"github.com/quillhq/quill/internal/notify/email"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	users  *auth.Service
	blog   *blog.Service
	mailer *email.Service
	config *config.Config
}

// New creates a new handler.
func New(users *auth.Service, blogSvc *blog.Service, mailer *email.Service, cfg *config.Config) *Handler {
	return &Handler{
		users:  users,
		blog:   blogSvc,
		mailer: mailer,
		config: cfg,
	}
}

func parseUintParam(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// respondError translates domain errors into the fixed outcome responses.
// Denials carry no detail beyond the boolean outcome.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, blog.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, database.ErrTitleConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "post title already taken"})
	case errors.Is(err, database.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		log.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Register creates a new account and, like the classic blog flow, logs the
// user straight in.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := apiauth.SaveSession(c, auth.UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsAdmin:   user.IsAdmin,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToUser(user))
}

// Login verifies credentials and establishes the session.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := apiauth.SaveSession(c, auth.UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsAdmin:   user.IsAdmin,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToUser(user))
}

// Logout invalidates the current session.
func (h *Handler) Logout(c *gin.Context) {
	if err := apiauth.ClearSession(c); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
