package models

import "time"

// PostLike is one element of a post's like-set.
// The combination of UserID and PostID must be unique.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_user_post;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentLike is one element of a comment's like-set.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"userId"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment;index" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}
