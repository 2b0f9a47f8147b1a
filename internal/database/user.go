package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/quillhq/quill/internal/database/models"
	"gorm.io/gorm"
)

// CreateUser persists a new user. A collision on the email unique index is
// reported as ErrDuplicateEmail without leaving a partial row behind.
func (c *Client) CreateUser(ctx context.Context, user *models.User) error {
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		log.Error("failed to create user", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by email", "error", err)
		return nil, err
	}
	return &user, nil
}

// SetAdmin updates the admin flag of a user.
func (c *Client) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	res := c.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_admin", isAdmin)
	if res.Error != nil {
		log.Error("failed to update admin flag", "user_id", id, "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by id", "error", err)
		return nil, err
	}
	return &user, nil
}
