// Package models contains data structures for the application's domain models.
package models

import "time"

// DefaultProfilePicture is used when a user has not uploaded an avatar.
const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

// User represents a registered account on the Questa platform.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ProfilePicture string    `gorm:"default:''" json:"profilePicture"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"isAdmin"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Author is the denormalized projection of a user inlined into post and
// comment responses so clients do not need a follow-up lookup.
type Author struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// AsAuthor projects the user into its response shape.
func (u *User) AsAuthor() Author {
	picture := u.ProfilePicture
	if picture == "" {
		picture = DefaultProfilePicture
	}
	return Author{ID: u.ID, Username: u.Username, ProfilePicture: picture}
}
