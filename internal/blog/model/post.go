package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStatus post lifecycle status
type PostStatus string

const (
	// PostStatusDraft freshly created, not yet visible
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished publicly visible
	PostStatusPublished PostStatus = "published"
	// PostStatusArchived terminal status, no reactivation
	PostStatusArchived PostStatus = "archived"
)

// SEOData embedded search engine metadata
type SEOData struct {
	// MetaTitle at most 60 runes
	MetaTitle string `bson:"meta_title,omitempty" json:"meta_title,omitempty"`
	// MetaDescription at most 160 runes
	MetaDescription string `bson:"meta_description,omitempty" json:"meta_description,omitempty"`
	// Keywords at most 10 entries
	Keywords []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	// CanonicalURL canonical url of the post
	CanonicalURL string `bson:"canonical_url,omitempty" json:"canonical_url,omitempty"`
}

// Post blog posts
type Post struct {
	// ID unique identifier for the post
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt time when the post was created
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// UpdatedAt time when the post was last modified
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	// Title title of the post, at most 200 runes
	Title string `bson:"title" json:"title"`
	// Slug unique url name, lowercase `[a-z0-9-]+`, derived from title when absent
	Slug string `bson:"slug" json:"slug"`
	// Content full text body, search indexed
	Content string `bson:"content" json:"content"`
	// Excerpt short summary, derived from content when absent
	Excerpt string `bson:"excerpt" json:"excerpt"`
	// Author reference to the authoring user, required
	Author primitive.ObjectID `bson:"author" json:"author"`
	// Categories denormalized category names, 1 to 5 entries
	Categories []string `bson:"categories" json:"categories"`
	// Tags free-form tags, at most 10
	Tags []string `bson:"tags,omitempty" json:"tags,omitempty"`
	// FeaturedImage optional image url
	FeaturedImage string `bson:"featured_image,omitempty" json:"featured_image,omitempty"`
	// Status lifecycle status
	Status PostStatus `bson:"status" json:"status"`
	// PublishedAt set the first time status becomes published
	PublishedAt time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	// ReadTime derived reading minutes, ceil(words/200), at least 1
	ReadTime int `bson:"read_time" json:"read_time"`
	// Views monotonically non-decreasing counter, $inc only
	Views int64 `bson:"views" json:"views"`
	// Likes user references; the like count is len(Likes)
	Likes []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	// SEO embedded search engine metadata
	SEO SEOData `bson:"seo,omitempty" json:"seo,omitempty"`
}

// LikesCount cardinality of the like set.
func (p *Post) LikesCount() int {
	return len(p.Likes)
}

// IsPublished reports whether the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
