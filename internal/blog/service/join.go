package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	mongoSDK "github.com/Laisky/laisky-blog-content/library/db/mongo"
)

// likePreviewCap bounds how many likers are resolved per post; the full like
// count stays len(post.Likes) regardless.
const likePreviewCap = 10

// authorProjection is the projected subset a reference expands to.
var authorProjection = bson.D{
	{Key: "username", Value: 1},
	{Key: "first_name", Value: 1},
	{Key: "last_name", Value: 1},
	{Key: "profile.avatar", Value: 1},
}

// ResolveAuthor expands a user reference into its projected identity.
//
// A dangling reference resolves to nil rather than raising; the same holds
// when onlyActive is set and the referent has been soft deleted.
func (s *Blog) ResolveAuthor(ctx context.Context,
	id primitive.ObjectID, onlyActive bool) (*dto.AuthorRef, error) {
	filter := bson.M{"_id": id}
	if onlyActive {
		filter["is_active"] = true
	}

	var doc struct {
		ID        primitive.ObjectID `bson:"_id"`
		Username  string             `bson:"username"`
		FirstName string             `bson:"first_name"`
		LastName  string             `bson:"last_name"`
		Profile   struct {
			Avatar string `bson:"avatar"`
		} `bson:"profile"`
	}
	if err := s.dao.GetUsersCol().
		FindOne(ctx, filter, options.FindOne().SetProjection(authorProjection)).
		Decode(&doc); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "resolve author %s", id.Hex())
	}

	return &dto.AuthorRef{
		ID:        doc.ID.Hex(),
		Username:  doc.Username,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Avatar:    doc.Profile.Avatar,
	}, nil
}

// ResolveAuthors batch-expands user references with one $in query, returning
// a map keyed by hex id. Missing referents are simply absent from the map.
func (s *Blog) ResolveAuthors(ctx context.Context,
	ids []primitive.ObjectID) (map[string]*dto.AuthorRef, error) {
	resolved := make(map[string]*dto.AuthorRef, len(ids))
	if len(ids) == 0 {
		return resolved, nil
	}

	cur, err := s.dao.GetUsersCol().Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(authorProjection),
	)
	if err != nil {
		return nil, errors.Wrap(err, "resolve authors")
	}

	var docs []struct {
		ID        primitive.ObjectID `bson:"_id"`
		Username  string             `bson:"username"`
		FirstName string             `bson:"first_name"`
		LastName  string             `bson:"last_name"`
		Profile   struct {
			Avatar string `bson:"avatar"`
		} `bson:"profile"`
	}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "load authors")
	}

	for i := range docs {
		resolved[docs[i].ID.Hex()] = &dto.AuthorRef{
			ID:        docs[i].ID.Hex(),
			Username:  docs[i].Username,
			FirstName: docs[i].FirstName,
			LastName:  docs[i].LastName,
			Avatar:    docs[i].Profile.Avatar,
		}
	}

	return resolved, nil
}

// ResolveLikePreview expands at most 10 of the post's likers, preview-style.
// Dangling references are skipped, so fewer than 10 may come back even when
// the like set is larger.
func (s *Blog) ResolveLikePreview(ctx context.Context,
	likes []primitive.ObjectID) ([]*dto.AuthorRef, error) {
	if len(likes) > likePreviewCap {
		likes = likes[:likePreviewCap]
	}

	resolved, err := s.ResolveAuthors(ctx, likes)
	if err != nil {
		return nil, errors.Wrap(err, "resolve like preview")
	}

	preview := make([]*dto.AuthorRef, 0, len(likes))
	for _, id := range likes {
		if ref, ok := resolved[id.Hex()]; ok {
			preview = append(preview, ref)
		}
	}

	return preview, nil
}
