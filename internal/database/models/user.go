package models

import "time"

// User represents a registered account.
// The email is stored lowercase and its uniqueness is enforced by the index,
// so a concurrent duplicate registration fails on insert instead of racing a
// separate existence check.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Posts        []Post    `gorm:"foreignKey:AuthorID"`
	Comments     []Comment `gorm:"foreignKey:AuthorID"`
}

// FullName returns the display name for the user.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
