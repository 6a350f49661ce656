package models

import (
	"time"
)

// Follow represents the directed follow edge between two users: FollowerID
// follows UserID. The pair is unique and carries no payload beyond
// existence; a user never follows themselves.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_follow_user_follower" json:"user_id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_user_follower" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User     User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
