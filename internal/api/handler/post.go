package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apiauth "github.com/quillhq/quill/internal/api/auth"
	"github.com/quillhq/quill/internal/api/models"
	"github.com/quillhq/quill/internal/blog"
)

// ListPosts returns all posts. Public read, no authorization.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.blog.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToPosts(posts, h.config))
}

// GetPost returns a single post with its comments. Public read.
func (h *Handler) GetPost(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.blog.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToPostDetail(*post, h.config))
}

// CreatePost creates a post authored by the acting identity.
func (h *Handler) CreatePost(c *gin.Context) {
	var req models.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.blog.CreatePost(c.Request.Context(), apiauth.CurrentIdentity(c), blog.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ToPost(*post, h.config))
}

// UpdatePost edits a post. Only the owner or an administrator may edit.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req models.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.blog.EditPost(c.Request.Context(), apiauth.CurrentIdentity(c), id, blog.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToPost(*post, h.config))
}

// DeletePost deletes a post and its comments. Only the owner or an
// administrator may delete.
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.blog.DeletePost(c.Request.Context(), apiauth.CurrentIdentity(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
