// Package service is the service layer of the blog content core.
package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/dao"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

// Blog blog content service
type Blog struct {
	logger glog.Logger
	dao    *dao.Blog
}

// New new blog content service
func New(ctx context.Context,
	logger glog.Logger,
	dao *dao.Blog) (*Blog, error) {
	b := &Blog{
		logger: logger,
		dao:    dao,
	}

	if err := b.dao.EnsureIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "ensure indexes")
	}

	return b, nil
}

// parseObjectID converts a hex id into an ObjectID, mapping malformed input
// onto ErrInvalidReference.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(model.ErrInvalidReference, "parse id %q", id)
	}

	return oid, nil
}
