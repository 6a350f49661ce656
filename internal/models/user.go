// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Husq workspace.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Name      string    `gorm:"not null" json:"name"`
	About     string    `gorm:"type:text" json:"about"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Credential stores a user's salted password digest. It lives in its own
// table so the digest is never selected alongside profile reads and never
// appears in a response body.
type Credential struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for GORM
func (Credential) TableName() string {
	return "credentials"
}
