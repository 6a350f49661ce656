package models

import (
	"time"
)

// Like represents a user's like on a husq.
// The combination of UserID and HusqID must be unique; the edge is a set
// membership, so repeated connects are no-ops at the storage layer.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_husq" json:"user_id"`
	HusqID    uint      `gorm:"not null;uniqueIndex:idx_like_user_husq" json:"husq_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Husq Husq `gorm:"foreignKey:HusqID" json:"husq,omitempty"`
}
