// Package blog implements the content graph: posts, their comments, and the
// authorization rules guarding every mutation.
package blog

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/quillhq/quill/internal/auth"
	"github.com/quillhq/quill/internal/database"
	"github.com/quillhq/quill/internal/database/models"
)

// ErrForbidden is returned on any authorization denial. It carries no detail
// about why the actor was denied.
var ErrForbidden = errors.New("forbidden")

// Service provides post and comment operations.
type Service struct {
	db *database.Client
}

// New creates a new blog service.
func New(db *database.Client) *Service {
	return &Service{db: db}
}

// PostInput carries the writable fields of a post. Field-level validation
// happens upstream at the transport boundary.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// ListPosts returns all posts, newest first. Public read, no authorization.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.db.ListPosts(ctx)
}

// GetPost returns a single post with author and comments. Public read.
func (s *Service) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.db.GetPost(ctx, id)
}

// CreatePost creates a post authored by the acting identity.
func (s *Service) CreatePost(ctx context.Context, identity auth.Identity, in PostInput) (*models.Post, error) {
	user, ok := identity.User()
	if !ok {
		return nil, ErrForbidden
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		AuthorID: user.ID,
	}
	if err := s.db.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	log.Info("post created", "post_id", post.ID, "author_id", user.ID)
	return s.db.GetPost(ctx, post.ID)
}

// EditPost replaces the writable fields of a post. Only the owner or an
// administrator may edit; the post is resolved before the guard runs, so a
// missing post is reported as not found rather than forbidden. Authorship
// stays with the original author, even when an administrator edits.
func (s *Service) EditPost(ctx context.Context, identity auth.Identity, id uint, in PostInput) (*models.Post, error) {
	err := s.db.WithTx(ctx, func(tx *database.Client) error {
		post, err := tx.GetPostForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !auth.RequireOwnerOrAdmin(identity, post.AuthorID).Allowed() {
			return ErrForbidden
		}

		post.Title = in.Title
		post.Subtitle = in.Subtitle
		post.Body = in.Body
		post.ImageURL = in.ImageURL
		return tx.SavePost(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return s.db.GetPost(ctx, id)
}

// DeletePost removes a post together with all its comments. Only the owner
// or an administrator may delete. The cascade runs in one transaction, so
// the post and its comments are deleted together or not at all.
func (s *Service) DeletePost(ctx context.Context, identity auth.Identity, id uint) error {
	return s.db.WithTx(ctx, func(tx *database.Client) error {
		post, err := tx.GetPostForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !auth.RequireOwnerOrAdmin(identity, post.AuthorID).Allowed() {
			return ErrForbidden
		}
		if err := tx.DeletePost(ctx, post.ID); err != nil {
			return err
		}
		log.Info("post deleted", "post_id", post.ID)
		return nil
	})
}

// AddComment attaches a comment to a post. Any authenticated identity may
// comment on any post; the parent is resolved first so a missing post is
// not found, never forbidden.
func (s *Service) AddComment(ctx context.Context, identity auth.Identity, postID uint, text string) (*models.Comment, error) {
	post, err := s.db.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	user, ok := identity.User()
	if !ok {
		return nil, ErrForbidden
	}

	authorID := user.ID
	comment := &models.Comment{
		Text:     text,
		AuthorID: &authorID,
		PostID:   post.ID,
	}
	if err := s.db.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author, err = s.db.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return comment, nil
}
