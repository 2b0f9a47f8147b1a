package models

import "time"

// User is the response shape of an account. The password hash never leaves
// the server.
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

// Author is the public attribution of a post or comment.
type Author struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Comment is the response shape of a comment.
type Comment struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Posted    string    `json:"posted"`
}

// Post is the response shape of a post. Comments are only populated on the
// single-post endpoint.
type Post struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	Author    Author    `json:"author"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	Posted    string    `json:"posted"`
	Comments  []Comment `json:"comments,omitempty"`
}

// RegisterRequest is the payload for account registration. Field-level
// validation happens here at the boundary via binding tags.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PostRequest is the payload for creating or editing a post.
type PostRequest struct {
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle" binding:"required"`
	Body     string `json:"body" binding:"required"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

// CommentRequest is the payload for commenting on a post.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ContactRequest is the payload of the public contact form.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}
