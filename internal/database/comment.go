package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/quillhq/quill/internal/database/models"
)

// CreateComment persists a new comment on a post.
func (c *Client) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := c.db.WithContext(ctx).Create(comment).Error; err != nil {
		log.Error("failed to create comment", "error", err)
		return err
	}
	return nil
}

// ListCommentsForPost returns the comments of a post with their authors,
// oldest first.
func (c *Client) ListCommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		log.Error("failed to list comments", "post_id", postID, "error", err)
		return nil, err
	}
	return comments, nil
}
