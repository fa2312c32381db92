// Package dto defines the request and result shapes of the content core.
package dto

import (
	"time"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

// NewUser registration payload
type NewUser struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Age       int
	Roles     []model.UserRole
	Profile   model.UserProfile
}

// UserPatch partial user update.
//
// There is deliberately no password field here: the password can never be
// changed through the generic update path.
type UserPatch struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Age       *int
	Roles     []model.UserRole
	Profile   *model.UserProfile
}

// AuthorRef projected author identity attached to posts and comments
type AuthorRef struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Username  string `bson:"username" json:"username"`
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Avatar    string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// PageInfo pagination window derived from (page, limit, total)
type PageInfo struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int64 `json:"total_pages"`
	Offset      int64 `json:"-"`
}

// NewCategory category creation payload
type NewCategory struct {
	Name        string
	Description string
	ParentID    string
}

// CategoryNode category with its direct subcategories, assembled on demand
type CategoryNode struct {
	Category *model.Category `json:"category"`
	Children []*CategoryNode `json:"children,omitempty"`
}

// NewComment comment creation payload
type NewComment struct {
	PostID   string
	AuthorID string
	Content  string
	ParentID string
}

// CommentNode an approved comment with resolved author and direct replies
type CommentNode struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Likes     int64          `json:"likes"`
	Author    *AuthorRef     `json:"author,omitempty"`
	Replies   []*CommentNode `json:"replies,omitempty"`
}
