package dto

import (
	"time"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

// NewPost post creation payload
type NewPost struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	AuthorID      string
	Categories    []string
	Tags          []string
	FeaturedImage string
	SEO           model.SEOData
}

// PostPatch partial post update; derived fields (slug, excerpt, read_time,
// published_at) are recomputed by the write pipeline, never supplied.
type PostPatch struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Categories    []string
	Tags          []string
	FeaturedImage *string
	Status        *model.PostStatus
	SEO           *model.SEOData
}

// PostSummary list-view shape of a post; the full content is never included.
type PostSummary struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Title         string     `bson:"title" json:"title"`
	Slug          string     `bson:"slug" json:"slug"`
	Excerpt       string     `bson:"excerpt" json:"excerpt"`
	Categories    []string   `bson:"categories" json:"categories"`
	Tags          []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	FeaturedImage string     `bson:"featured_image,omitempty" json:"featured_image,omitempty"`
	PublishedAt   time.Time  `bson:"published_at,omitempty" json:"published_at,omitempty"`
	ReadTime      int        `bson:"read_time" json:"read_time"`
	Views         int64      `bson:"views" json:"views"`
	LikesCount    int        `json:"likes_count"`
	Author        *AuthorRef `json:"author,omitempty"`
	// TextScore relevance score attached by full-text search ordering
	TextScore float64 `bson:"text_score,omitempty" json:"-"`
}

// SearchCriteria multi-criteria post filter; criteria compose with AND,
// each membership set is an OR across its values.
type SearchCriteria struct {
	// Text free-text query scored against title/excerpt/content
	Text string
	// Categories membership test, any overlap
	Categories []string
	// Tags membership test, any overlap
	Tags []string
	// Author fuzzy case-insensitive substring over first/last/username
	Author string
	// DateFrom inclusive lower bound on published_at
	DateFrom *time.Time
	// DateTo inclusive upper bound on published_at
	DateTo *time.Time
	// MinViews inclusive lower bound on views
	MinViews *int64
	// HasImage existence predicate on featured_image
	HasImage *bool
}
