package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

const (
	// popularWindow lookback for the weekly popularity report
	popularWindow = 7 * 24 * time.Hour
	// popularLimit number of posts in the popularity report
	popularLimit = 10
	// likeWeight weight of one like against one view in the engagement score
	likeWeight = 5
)

// engagementScore the weighted popularity metric: views + 5 per like.
func engagementScore(views int64, likes int) int64 {
	return views + likeWeight*int64(likes)
}

// likesSize counts the like set inside a pipeline, tolerating absent arrays.
var likesSize = bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}}

// lookupAuthor joins user identity onto each row. The unwind keeps rows
// whose author was hard deleted, so a dangling reference degrades to a null
// author instead of silently dropping the post from the report.
func lookupAuthor(localField string) []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   localField,
			"foreignField": "_id",
			"as":           "author",
		}},
		{"$unwind": bson.M{
			"path":                       "$author",
			"preserveNullAndEmptyArrays": true,
		}},
	}
}

// PostStatsByCategory groups published posts per category name and
// summarizes views. A post with three categories lands in three buckets.
func (s *Blog) PostStatsByCategory(ctx context.Context) ([]*dto.CategoryStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": model.PostStatusPublished}},
		{"$unwind": "$categories"},
		{"$group": bson.M{
			"_id":                 "$categories",
			"post_count":          bson.M{"$sum": 1},
			"total_views":         bson.M{"$sum": "$views"},
			"avg_views":           bson.M{"$avg": "$views"},
			"max_views":           bson.M{"$max": "$views"},
			"latest_published_at": bson.M{"$max": "$published_at"},
		}},
		{"$sort": bson.M{"post_count": -1}},
	}

	cur, err := s.dao.GetPostsCol().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate category stats")
	}

	stats := []*dto.CategoryStats{}
	if err = cur.All(ctx, &stats); err != nil {
		return nil, errors.Wrap(err, "load category stats")
	}

	return stats, nil
}

// AuthorStatistics summarizes every author with at least one published post,
// joined with author identity and ordered by total views descending.
//
// Engagement is total likes over total views, defined as 0 when an author
// has no views at all.
func (s *Blog) AuthorStatistics(ctx context.Context) ([]*dto.AuthorStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": model.PostStatusPublished}},
		{"$group": bson.M{
			"_id":                "$author",
			"post_count":         bson.M{"$sum": 1},
			"total_views":        bson.M{"$sum": "$views"},
			"total_likes":        bson.M{"$sum": likesSize},
			"avg_views":          bson.M{"$avg": "$views"},
			"first_published_at": bson.M{"$min": "$published_at"},
		}},
	}
	pipeline = append(pipeline, lookupAuthor("_id")...)
	pipeline = append(pipeline,
		bson.M{"$project": bson.M{
			"username": "$author.username",
			"full_name": bson.M{"$concat": bson.A{
				"$author.first_name", " ", "$author.last_name",
			}},
			"post_count":         1,
			"total_views":        1,
			"total_likes":        1,
			"avg_views":          bson.M{"$round": bson.A{"$avg_views", 2}},
			"first_published_at": 1,
			"engagement": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$total_views", 0}},
				bson.M{"$divide": bson.A{"$total_likes", "$total_views"}},
				0,
			}},
		}},
		bson.M{"$sort": bson.M{"total_views": -1}},
	)

	cur, err := s.dao.GetPostsCol().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate author stats")
	}

	stats := []*dto.AuthorStats{}
	if err = cur.All(ctx, &stats); err != nil {
		return nil, errors.Wrap(err, "load author stats")
	}

	now := gutils.Clock.GetUTCNow()
	for _, st := range stats {
		st.DaysActive = daysSince(now, st.FirstPublishedAt)
	}

	return stats, nil
}

// daysSince fractional wall-clock days between then and now.
func daysSince(now, then time.Time) float64 {
	if then.IsZero() {
		return 0
	}

	return now.Sub(then).Hours() / 24
}

// PopularPostsThisWeek ranks posts published within the last 7 days by
// engagement score and returns the top 10 with author identity attached.
func (s *Blog) PopularPostsThisWeek(ctx context.Context) ([]*dto.PopularPost, error) {
	since := gutils.Clock.GetUTCNow().Add(-popularWindow)

	pipeline := []bson.M{
		{"$match": bson.M{
			"status":       model.PostStatusPublished,
			"published_at": bson.M{"$gte": since},
		}},
		{"$project": bson.M{
			"title":        1,
			"slug":         1,
			"views":        1,
			"published_at": 1,
			"author":       1,
			"likes_count":  likesSize,
			"engagement_score": bson.M{"$add": bson.A{
				"$views",
				bson.M{"$multiply": bson.A{likeWeight, likesSize}},
			}},
		}},
		{"$sort": bson.M{"engagement_score": -1}},
		{"$limit": popularLimit},
	}
	pipeline = append(pipeline, lookupAuthor("author")...)
	pipeline = append(pipeline, bson.M{"$project": bson.M{
		"title":            1,
		"slug":             1,
		"views":            1,
		"published_at":     1,
		"likes_count":      1,
		"engagement_score": 1,
		"author": bson.M{
			"_id":        "$author._id",
			"username":   "$author.username",
			"first_name": "$author.first_name",
			"last_name":  "$author.last_name",
		},
	}})

	cur, err := s.dao.GetPostsCol().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate popular posts")
	}

	posts := []*dto.PopularPost{}
	if err = cur.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "load popular posts")
	}

	s.logger.Debug("popular posts this week", zap.Int("n", len(posts)))
	return posts, nil
}

// LoadDashboard computes the three analytics reports concurrently.
func (s *Blog) LoadDashboard(ctx context.Context) (*dto.Dashboard, error) {
	dashboard := new(dto.Dashboard)

	pool, gctx := errgroup.WithContext(ctx)
	pool.Go(func() (err error) {
		dashboard.Categories, err = s.PostStatsByCategory(gctx)
		return errors.Wrap(err, "category stats")
	})
	pool.Go(func() (err error) {
		dashboard.Authors, err = s.AuthorStatistics(gctx)
		return errors.Wrap(err, "author stats")
	})
	pool.Go(func() (err error) {
		dashboard.Popular, err = s.PopularPostsThisWeek(gctx)
		return errors.Wrap(err, "popular posts")
	})

	if err := pool.Wait(); err != nil {
		return nil, err
	}

	return dashboard, nil
}
