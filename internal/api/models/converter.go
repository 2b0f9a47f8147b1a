package models

import (
	"github.com/mergestat/timediff"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/database/models"
	"github.com/quillhq/quill/internal/gravatar"
	"github.com/samber/lo"
)

// dateLayout matches the human-readable date shown next to a post.
const dateLayout = "January 2, 2006"

// ToAuthor converts a database user to its public attribution.
func ToAuthor(u *models.User, cfg *config.Config) *Author {
	if u == nil {
		return nil
	}
	return &Author{
		ID:        u.ID,
		Name:      u.FullName(),
		AvatarURL: gravatar.GenerateURL(u.Email, cfg.Gravatar),
	}
}

// ToComment converts a database comment to its response shape.
func ToComment(c models.Comment, cfg *config.Config) Comment {
	return Comment{
		ID:        c.ID,
		Text:      c.Text,
		Author:    ToAuthor(c.Author, cfg),
		CreatedAt: c.CreatedAt,
		Posted:    timediff.TimeDiff(c.CreatedAt),
	}
}

// ToPost converts a database post to its response shape, without comments.
func ToPost(p models.Post, cfg *config.Config) Post {
	post := Post{
		ID:        p.ID,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		Date:      p.CreatedAt.Format(dateLayout),
		CreatedAt: p.CreatedAt,
		Posted:    timediff.TimeDiff(p.CreatedAt),
	}
	if author := ToAuthor(&p.Author, cfg); author != nil {
		post.Author = *author
	}
	return post
}

// ToPostDetail converts a database post including its comments.
func ToPostDetail(p models.Post, cfg *config.Config) Post {
	post := ToPost(p, cfg)
	post.Comments = lo.Map(p.Comments, func(c models.Comment, _ int) Comment {
		return ToComment(c, cfg)
	})
	return post
}

// ToPosts converts a slice of database posts.
func ToPosts(posts []models.Post, cfg *config.Config) []Post {
	return lo.Map(posts, func(p models.Post, _ int) Post {
		return ToPost(p, cfg)
	})
}

// ToUser converts a database user to its response shape.
func ToUser(u *models.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}
