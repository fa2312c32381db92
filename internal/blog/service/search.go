package service

import (
	"context"
	"regexp"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

const (
	// maxSearchResults caps every list-producing search call
	maxSearchResults = 50
	// defaultSimilarLimit default number of similar posts returned
	defaultSimilarLimit = 5
)

// searchDoc is a post with the relevance score attached by $text queries.
type searchDoc struct {
	model.Post `bson:",inline"`
	TextScore  float64 `bson:"text_score"`
}

// SearchPosts evaluates a multi-criteria filter over published posts and
// returns a relevance-ordered, content-stripped result set capped at 50.
//
// Criteria compose with AND; each membership set is an OR across its values.
// With free text present the order is text relevance then publish date, both
// descending; otherwise publish date descending.
func (s *Blog) SearchPosts(ctx context.Context, criteria *dto.SearchCriteria) ([]*dto.PostSummary, error) {
	logger := s.logger.With(
		zap.String("text", criteria.Text),
		zap.String("author", criteria.Author),
	)

	var authorIDs []primitive.ObjectID
	if criteria.Author != "" {
		var err error
		if authorIDs, err = s.matchAuthorIDs(ctx, criteria.Author); err != nil {
			return nil, errors.Wrap(err, "match author ids")
		}

		// no matching author degrades to an empty result, not to unfiltered
		if len(authorIDs) == 0 {
			logger.Debug("author matched nobody")
			return []*dto.PostSummary{}, nil
		}
	}

	filter := buildSearchFilter(criteria, authorIDs)

	findOpts := options.Find().
		SetLimit(maxSearchResults).
		SetProjection(searchProjection(criteria.Text != "")).
		SetSort(searchSort(criteria.Text != ""))

	cur, err := s.dao.GetPostsCol().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}

	var docs []*searchDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "load posts")
	}

	results, err := s.summarizeSearchDocs(ctx, docs)
	if err != nil {
		return nil, err
	}

	logger.Debug("search posts done", zap.Int("n", len(results)))
	return results, nil
}

// FindSimilarPosts returns published posts sharing at least one category or
// tag with the source, newest first. A missing source yields an empty
// sequence, not an error.
func (s *Blog) FindSimilarPosts(ctx context.Context, postID string, limit int) ([]*dto.PostSummary, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	pid, err := parseObjectID(postID)
	if err != nil {
		return nil, err
	}

	source, err := s.LoadPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return []*dto.PostSummary{}, nil
		}

		return nil, err
	}

	cur, err := s.dao.GetPostsCol().Find(ctx,
		buildSimilarFilter(pid, source.Categories, source.Tags),
		options.Find().
			SetSort(bson.D{{Key: "published_at", Value: -1}}).
			SetLimit(int64(limit)).
			SetProjection(searchProjection(false)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find similar posts")
	}

	var docs []*searchDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "load similar posts")
	}

	return s.summarizeSearchDocs(ctx, docs)
}

// FindPostsWithApprovedComments returns the published posts that have at
// least one approved comment, newest first.
func (s *Blog) FindPostsWithApprovedComments(ctx context.Context) ([]*dto.PostSummary, error) {
	postIDs, err := s.dao.DistinctPostIDs(ctx, bson.M{"is_approved": true})
	if err != nil {
		return nil, errors.Wrap(err, "distinct commented posts")
	}
	if len(postIDs) == 0 {
		return []*dto.PostSummary{}, nil
	}

	cur, err := s.dao.GetPostsCol().Find(ctx,
		bson.M{
			"_id":    bson.M{"$in": postIDs},
			"status": model.PostStatusPublished,
		},
		options.Find().
			SetSort(bson.D{{Key: "published_at", Value: -1}}).
			SetLimit(maxSearchResults).
			SetProjection(searchProjection(false)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find commented posts")
	}

	var docs []*searchDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "load commented posts")
	}

	return s.summarizeSearchDocs(ctx, docs)
}

// matchAuthorIDs resolves a fuzzy case-insensitive substring of the author
// name to the matching user ids.
func (s *Blog) matchAuthorIDs(ctx context.Context, name string) ([]primitive.ObjectID, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}

	cur, err := s.dao.GetUsersCol().Find(ctx,
		bson.M{"$or": []bson.M{
			{"first_name": pattern},
			{"last_name": pattern},
			{"username": pattern},
		}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "search authors %q", name)
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "load author ids")
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}

	return ids, nil
}

// buildSimilarFilter matches published posts other than the source that
// share at least one category or tag with it. The source id is excluded
// unconditionally, even when it trivially overlaps itself.
func buildSimilarFilter(sourceID primitive.ObjectID, categories, tags []string) bson.M {
	overlap := []bson.M{{"categories": bson.M{"$in": categories}}}
	if len(tags) > 0 {
		overlap = append(overlap, bson.M{"tags": bson.M{"$in": tags}})
	}

	return bson.M{
		"_id":    bson.M{"$ne": sourceID},
		"status": model.PostStatusPublished,
		"$or":    overlap,
	}
}

// buildSearchFilter composes the storage filter: published only, AND across
// criteria, OR within each membership set.
func buildSearchFilter(criteria *dto.SearchCriteria, authorIDs []primitive.ObjectID) bson.M {
	filter := bson.M{"status": model.PostStatusPublished}

	if criteria.Text != "" {
		filter["$text"] = bson.M{"$search": criteria.Text}
	}
	if len(criteria.Categories) > 0 {
		filter["categories"] = bson.M{"$in": criteria.Categories}
	}
	if len(criteria.Tags) > 0 {
		filter["tags"] = bson.M{"$in": criteria.Tags}
	}
	if len(authorIDs) > 0 {
		filter["author"] = bson.M{"$in": authorIDs}
	}
	if criteria.DateFrom != nil || criteria.DateTo != nil {
		published := bson.M{}
		if criteria.DateFrom != nil {
			published["$gte"] = *criteria.DateFrom
		}
		if criteria.DateTo != nil {
			published["$lte"] = *criteria.DateTo
		}
		filter["published_at"] = published
	}
	if criteria.MinViews != nil {
		filter["views"] = bson.M{"$gte": *criteria.MinViews}
	}
	if criteria.HasImage != nil {
		if *criteria.HasImage {
			filter["featured_image"] = bson.M{"$exists": true, "$ne": ""}
		} else {
			filter["featured_image"] = bson.M{"$in": bson.A{nil, ""}}
		}
	}

	return filter
}

// searchProjection strips the full content from list views and attaches the
// relevance score when full text is in play.
func searchProjection(withScore bool) bson.M {
	projection := bson.M{"content": 0}
	if withScore {
		projection["text_score"] = bson.M{"$meta": "textScore"}
	}

	return projection
}

// searchSort orders by relevance then publish date under full text, by
// publish date alone otherwise.
func searchSort(withScore bool) bson.D {
	if withScore {
		return bson.D{
			{Key: "text_score", Value: bson.M{"$meta": "textScore"}},
			{Key: "published_at", Value: -1},
		}
	}

	return bson.D{{Key: "published_at", Value: -1}}
}

// summarizeSearchDocs maps raw docs to summaries and attaches resolved authors.
func (s *Blog) summarizeSearchDocs(ctx context.Context, docs []*searchDoc) ([]*dto.PostSummary, error) {
	authorIDs := make([]primitive.ObjectID, 0, len(docs))
	seen := map[primitive.ObjectID]struct{}{}
	for _, d := range docs {
		if _, ok := seen[d.Author]; ok {
			continue
		}
		seen[d.Author] = struct{}{}
		authorIDs = append(authorIDs, d.Author)
	}

	authors, err := s.ResolveAuthors(ctx, authorIDs)
	if err != nil {
		return nil, errors.Wrap(err, "resolve post authors")
	}

	results := make([]*dto.PostSummary, 0, len(docs))
	for _, d := range docs {
		summary := new(dto.PostSummary)
		if err := copier.Copy(summary, &d.Post); err != nil {
			return nil, errors.Wrap(err, "map post summary")
		}

		summary.ID = d.ID.Hex()
		summary.LikesCount = d.LikesCount()
		summary.TextScore = d.TextScore
		summary.Author = authors[d.Author.Hex()]
		results = append(results, summary)
	}

	return results, nil
}
