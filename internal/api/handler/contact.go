package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/internal/api/models"
	"github.com/quillhq/quill/internal/notify/email"
)

// Contact accepts a contact form submission and triggers the outbound
// notification. Delivery is best effort: a failed send is reported in the
// response body, never as a request failure.
func (h *Handler) Contact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.mailer.SendContactNotification(email.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		log.Warn("contact notification not delivered", "error", err)
		c.JSON(http.StatusOK, gin.H{"delivered": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivered": true})
}
