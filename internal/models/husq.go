// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Husq represents a short post. A husq with a non-nil ReplyID is a reply in
// the thread under its parent; top-level feeds filter those out.
//
// Deleted husqs are tombstones: the row stays so reply threads keep their
// parent linkage, but every list and detail read excludes them.
type Husq struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:varchar(140);not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ReplyID  *uint  `gorm:"index" json:"replyId"`
	Deleted  bool   `gorm:"not null;default:false;index" json:"-"`
	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"likeCount"`
	// ReplyCount is not persisted; computed at query time
	ReplyCount int `gorm:"->" json:"replyCount"`
	// Liked indicates whether the requesting user liked this husq. It is
	// computed per request for the authenticated caller and must never be
	// cached or carried across requests.
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"createdAt"`
}
