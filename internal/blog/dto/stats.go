package dto

import "time"

// CategoryStats per-category aggregation over published posts.
// A post with several categories contributes to each of its buckets.
type CategoryStats struct {
	Category          string    `bson:"_id" json:"category"`
	PostCount         int64     `bson:"post_count" json:"post_count"`
	TotalViews        int64     `bson:"total_views" json:"total_views"`
	AvgViews          float64   `bson:"avg_views" json:"avg_views"`
	MaxViews          int64     `bson:"max_views" json:"max_views"`
	LatestPublishedAt time.Time `bson:"latest_published_at" json:"latest_published_at"`
}

// AuthorStats per-author aggregation over published posts, joined with identity.
type AuthorStats struct {
	AuthorID         string    `bson:"_id" json:"author_id"`
	Username         string    `bson:"username" json:"username"`
	FullName         string    `bson:"full_name" json:"full_name"`
	PostCount        int64     `bson:"post_count" json:"post_count"`
	TotalViews       int64     `bson:"total_views" json:"total_views"`
	TotalLikes       int64     `bson:"total_likes" json:"total_likes"`
	AvgViews         float64   `bson:"avg_views" json:"avg_views"`
	FirstPublishedAt time.Time `bson:"first_published_at" json:"first_published_at"`
	// DaysActive fractional days since the first published post
	DaysActive float64 `bson:"-" json:"days_active"`
	// Engagement total likes over total views; 0 when there are no views
	Engagement float64 `bson:"engagement" json:"engagement"`
}

// PopularPost a recently published post ranked by engagement score.
type PopularPost struct {
	ID              string     `bson:"_id" json:"id"`
	Title           string     `bson:"title" json:"title"`
	Slug            string     `bson:"slug" json:"slug"`
	Views           int64      `bson:"views" json:"views"`
	LikesCount      int64      `bson:"likes_count" json:"likes_count"`
	EngagementScore int64      `bson:"engagement_score" json:"engagement_score"`
	PublishedAt     time.Time  `bson:"published_at" json:"published_at"`
	Author          *AuthorRef `bson:"author,omitempty" json:"author,omitempty"`
}

// Dashboard the three analytics reports computed in one pass.
type Dashboard struct {
	Categories []*CategoryStats `json:"categories"`
	Authors    []*AuthorStats   `json:"authors"`
	Popular    []*PopularPost   `json:"popular"`
}
