package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apiauth "github.com/quillhq/quill/internal/api/auth"
	"github.com/quillhq/quill/internal/api/models"
)

// CreateComment attaches a comment to a post. Any authenticated identity may
// comment on any post.
func (h *Handler) CreateComment(c *gin.Context) {
	postID, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.blog.AddComment(c.Request.Context(), apiauth.CurrentIdentity(c), postID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ToComment(*comment, h.config))
}
