package models

import "time"

// Post is a published article. Every post has exactly one author; its
// comments are owned by composition and are deleted together with it.
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"uniqueIndex;not null"`
	Subtitle  string `gorm:"not null"`
	Body      string `gorm:"not null"`
	ImageURL  string
	AuthorID  uint `gorm:"not null"`
	Author    User
	CreatedAt time.Time
	UpdatedAt time.Time
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
