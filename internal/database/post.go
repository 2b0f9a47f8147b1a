package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/quillhq/quill/internal/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatePost persists a new post. A collision on the title unique index is
// reported as ErrTitleConflict.
func (c *Client) CreatePost(ctx context.Context, post *models.Post) error {
	if err := c.db.WithContext(ctx).Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTitleConflict
		}
		log.Error("failed to create post", "error", err)
		return err
	}
	return nil
}

// GetPost returns a post with its author and comments.
func (c *Client) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := c.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments").
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get post", "error", err)
		return nil, err
	}
	return &post, nil
}

// GetPostForUpdate returns a post under a row-level lock. Only meaningful
// inside WithTx; the lock is held until the transaction ends.
func (c *Client) GetPostForUpdate(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := c.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get post for update", "error", err)
		return nil, err
	}
	return &post, nil
}

// ListPosts returns all posts with their authors, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		log.Error("failed to list posts", "error", err)
		return nil, err
	}
	return posts, nil
}

// SavePost writes back an updated post.
func (c *Client) SavePost(ctx context.Context, post *models.Post) error {
	if err := c.db.WithContext(ctx).Save(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTitleConflict
		}
		log.Error("failed to save post", "error", err)
		return err
	}
	return nil
}

// DeletePost removes a post and all its comments. Callers wrap this in
// WithTx so the post and its comments go together or not at all.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		log.Error("failed to delete comments for post", "post_id", id, "error", err)
		return err
	}
	if err := c.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		log.Error("failed to delete post", "post_id", id, "error", err)
		return err
	}
	return nil
}
