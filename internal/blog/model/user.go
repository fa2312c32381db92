// Package model contains all the models used in the application.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole authorization role granted to a user
type UserRole string

const (
	// RoleUser regular user, the default role
	RoleUser UserRole = "user"
	// RoleAdmin site administrator
	RoleAdmin UserRole = "admin"
	// RoleModerator comment moderator
	RoleModerator UserRole = "moderator"
)

// SocialLinks social media handles embedded in a user profile
type SocialLinks struct {
	Twitter  string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Github   string `bson:"github,omitempty" json:"github,omitempty"`
	Linkedin string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

// UserProfile optional profile data embedded in a user
type UserProfile struct {
	// Bio short self description, at most 500 runes
	Bio string `bson:"bio,omitempty" json:"bio,omitempty"`
	// Avatar image url
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	// Location free-form location string
	Location string `bson:"location,omitempty" json:"location,omitempty"`
	// Website personal website url
	Website string `bson:"website,omitempty" json:"website,omitempty"`
	// Social social media handles
	Social SocialLinks `bson:"social,omitempty" json:"social,omitempty"`
}

// User blog users
type User struct {
	// ID unique identifier for the user
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt time when the user registered
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// UpdatedAt last modified time
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	// Email login email, unique, stored lowercased
	Email string `bson:"email" json:"email"`
	// Username display handle, unique, alphanumeric plus underscore
	Username string `bson:"username" json:"username"`
	// Password opaque credential, never serialized outward
	Password string `bson:"password,omitempty" json:"-"`
	// FirstName given name
	FirstName string `bson:"first_name" json:"first_name"`
	// LastName family name
	LastName string `bson:"last_name" json:"last_name"`
	// Age age in years, within [13, 120]
	Age int `bson:"age" json:"age"`
	// Roles granted roles, never empty
	Roles []UserRole `bson:"roles" json:"roles"`
	// Profile optional profile data
	Profile UserProfile `bson:"profile,omitempty" json:"profile"`
	// IsActive false after soft delete
	IsActive bool `bson:"is_active" json:"is_active"`
	// LastLogin set by the authentication collaborator on each login
	LastLogin time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
}

// FullName first and last name joined with a space.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// IsTrusted reports whether the user's comments skip moderation.
func (u *User) IsTrusted() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleModerator)
}
