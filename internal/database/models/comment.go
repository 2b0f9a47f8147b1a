package models

import "time"

// Comment belongs to exactly one post. The author reference is attribution
// only, not ownership, and may become null if the account ever goes away.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"not null"`
	AuthorID  *uint
	Author    *User
	PostID    uint `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
