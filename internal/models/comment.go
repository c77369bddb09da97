// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on a post.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"postId"`
	Post    Post   `gorm:"foreignKey:PostID" json:"-"`
	UserID  uint   `gorm:"not null;index" json:"userId"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
	Content string `gorm:"type:text;not null" json:"content"`
	// NumberOfLikes is not persisted; computed at query time from comment_likes
	NumberOfLikes int `gorm:"->" json:"numberOfLikes"`
	// Likes is the set of user IDs that liked this comment, filled on read
	Likes []uint `gorm:"-" json:"likes"`
	// Author and PostRef are denormalized projections, filled on read
	Author    *Author   `gorm:"-" json:"user,omitempty"`
	PostRef   *PostRef  `gorm:"-" json:"post,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
