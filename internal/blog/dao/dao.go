// Package dao contains all the data access objects used in the application.
package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
	"github.com/Laisky/laisky-blog-content/library/db/mongo"
)

const (
	colUsers      = "users"
	colPosts      = "posts"
	colComments   = "comments"
	colCategories = "categories"
)

// Blog dao type
type Blog struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Blog {
	return &Blog{
		logger: logger,
		db:     db,
	}
}

// GetUsersCol get users collection
func (d *Blog) GetUsersCol() *mongoLib.Collection {
	return d.db.GetCol(colUsers)
}

// GetPostsCol get posts collection
func (d *Blog) GetPostsCol() *mongoLib.Collection {
	return d.db.GetCol(colPosts)
}

// GetCommentsCol get comments collection
func (d *Blog) GetCommentsCol() *mongoLib.Collection {
	return d.db.GetCol(colComments)
}

// GetCategoriesCol get categories collection
func (d *Blog) GetCategoriesCol() *mongoLib.Collection {
	return d.db.GetCol(colCategories)
}

// EnsureIndexes creates the unique and full-text indexes the queries rely on.
//
// The posts text index carries the relevance weights used for search ordering:
// title 10, excerpt 5, content 1.
func (d *Blog) EnsureIndexes(ctx context.Context) error {
	if _, err := d.GetUsersCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}); err != nil {
		return errors.Wrap(err, "create user indexes")
	}

	if _, err := d.GetPostsCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "excerpt", Value: "text"},
				{Key: "content", Value: "text"},
			},
			Options: options.Index().SetWeights(bson.D{
				{Key: "title", Value: 10},
				{Key: "excerpt", Value: 5},
				{Key: "content", Value: 1},
			}),
		},
	}); err != nil {
		return errors.Wrap(err, "create post indexes")
	}

	if _, err := d.GetCommentsCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{
			Keys: bson.D{{Key: "post", Value: 1}, {Key: "is_approved", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "parent", Value: 1}},
		},
	}); err != nil {
		return errors.Wrap(err, "create comment indexes")
	}

	if _, err := d.GetCategoriesCol().Indexes().CreateOne(ctx, mongoLib.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return errors.Wrap(err, "create category indexes")
	}

	return nil
}

// IncrementField applies an atomic single-document $inc so concurrent
// increments are never lost to read-modify-write races.
func (d *Blog) IncrementField(ctx context.Context,
	col *mongoLib.Collection, id primitive.ObjectID, field string, delta int64) error {
	result, err := col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return errors.Wrapf(err, "increment %s", field)
	}

	return matchedOrNotFound(result.MatchedCount, id)
}

// matchedOrNotFound maps an unmatched single-document update to ErrNotFound
// so callers can match it with errors.Is like every other mutate path.
func matchedOrNotFound(matched int64, id primitive.ObjectID) error {
	if matched == 0 {
		return errors.Wrapf(model.ErrNotFound, "document %s", id.Hex())
	}

	return nil
}

// DistinctPostIDs returns the distinct post ids among comments matching filter.
func (d *Blog) DistinctPostIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	raw, err := d.GetCommentsCol().Distinct(ctx, "post", filter)
	if err != nil {
		return nil, errors.Wrap(err, "distinct post ids")
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}
