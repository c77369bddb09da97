// Package models contains data structures for the application's domain models.
package models

import "time"

// DefaultPostImage is the placeholder shown for posts created without an image.
const DefaultPostImage = "https://www.hostinger.com/tutorials/wp-content/uploads/sites/2/2021/09/how-to-write-a-blog-post.png"

// DefaultPostCategory is applied when no category is supplied at creation.
const DefaultPostCategory = "uncategorized"

// Post represents a blog post. Title and slug are unique across the store.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"userId"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	Title    string `gorm:"not null;uniqueIndex" json:"title"`
	Slug     string `gorm:"not null;uniqueIndex" json:"slug"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Image    string `json:"image"`
	Category string `gorm:"not null;default:'uncategorized'" json:"category"`
	// NumberOfLikes is not persisted; computed at query time from post_likes
	NumberOfLikes int `gorm:"->" json:"numberOfLikes"`
	// Likes is the set of user IDs that liked this post, filled on read
	Likes []uint `gorm:"-" json:"likes"`
	// Author is the denormalized owner projection, filled on read
	Author *Author `gorm:"-" json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageURL returns the canonical page path for the post.
func (p *Post) PageURL() string {
	return "/posts/" + p.Slug
}

// PostRef is the denormalized projection of a post inlined into comment
// responses: just enough to render a link back to the parent post.
type PostRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
	URL   string `json:"url"`
}

// AsRef projects the post into the shape embedded in comment responses.
func (p *Post) AsRef() PostRef {
	return PostRef{ID: p.ID, Title: p.Title, Slug: p.Slug, Image: p.Image, URL: p.PageURL()}
}
