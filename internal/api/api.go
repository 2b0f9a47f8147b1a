package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	apiauth "github.com/quillhq/quill/internal/api/auth"
	"github.com/quillhq/quill/internal/api/handler"
	"github.com/quillhq/quill/internal/auth"
	"github.com/quillhq/quill/internal/blog"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/database"
	"github.com/quillhq/quill/internal/notify/email"
)

// Server is the HTTP surface of Quill.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
}

// New creates a new API server.
func New(cfg *config.Config, db *database.Client, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
	}

	users := auth.NewService(db)
	blogSvc := blog.New(db)
	mailer := email.New(cfg.Email)
	h := handler.New(users, blogSvc, mailer, cfg)

	s.setupRoutes(h)

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("quill_session", store))
}

func (s *Server) setupRoutes(h *handler.Handler) {
	s.setupSession()
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.ginEngine.Use(apiauth.Identity())

	s.ginEngine.POST("/auth/register", h.Register)
	s.ginEngine.POST("/auth/login", h.Login)
	s.ginEngine.POST("/auth/logout", h.Logout)

	// Public reads and the contact form need no authorization.
	s.ginEngine.GET("/posts", h.ListPosts)
	s.ginEngine.GET("/posts/:id", h.GetPost)
	s.ginEngine.POST("/contact", h.Contact)

	protected := s.ginEngine.Group("/")
	protected.Use(apiauth.RequireAuth())
	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.POST("/posts/:id/comments", h.CreateComment)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
