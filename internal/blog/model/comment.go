package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment in the blog
type Comment struct {
	// ID is the unique identifier for the comment
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt records when the comment was first submitted
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// UpdatedAt records the last modification time
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	// Content comment body, at most 1000 runes
	Content string `bson:"content" json:"content"`
	// Author reference to the authoring user
	Author primitive.ObjectID `bson:"author" json:"author"`
	// PostID the post this comment belongs to
	PostID primitive.ObjectID `bson:"post" json:"post"`
	// ParentID optional parent comment; must belong to the same post
	ParentID *primitive.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`
	// IsApproved false until moderated, unless the author is trusted
	IsApproved bool `bson:"is_approved" json:"is_approved"`
	// Likes like counter, $inc only
	Likes int64 `bson:"likes" json:"likes"`
}

// Category named taxonomy node, optionally nested under one parent
type Category struct {
	// ID unique identifier for the category
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt time when the category was created
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// Name unique display name
	Name string `bson:"name" json:"name"`
	// Slug unique url name
	Slug string `bson:"slug" json:"slug"`
	// Description optional description
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	// ParentID optional parent category
	ParentID *primitive.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`
	// PostCount denormalized post counter, eventually consistent
	PostCount int64 `bson:"post_count" json:"post_count"`
}
