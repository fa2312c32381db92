package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
	mongoSDK "github.com/Laisky/laisky-blog-content/library/db/mongo"
)

// CreateCategory inserts a new taxonomy node, optionally nested under a parent.
func (s *Blog) CreateCategory(ctx context.Context, input *dto.NewCategory) (*model.Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}

	cate := &model.Category{
		ID:          primitive.NewObjectID(),
		CreatedAt:   gutils.Clock.GetUTCNow(),
		Name:        name,
		Slug:        Slugify(name),
		Description: input.Description,
	}

	if input.ParentID != "" {
		parentID, err := parseObjectID(input.ParentID)
		if err != nil {
			return nil, err
		}

		parent := new(model.Category)
		if err = s.dao.GetCategoriesCol().
			FindOne(ctx, bson.M{"_id": parentID}).
			Decode(parent); err != nil {
			if mongoSDK.NotFound(err) {
				return nil, errors.Wrapf(model.ErrNotFound, "parent category %s", input.ParentID)
			}

			return nil, errors.Wrap(err, "load parent category")
		}

		cate.ParentID = &parent.ID
	}

	if _, err = s.dao.GetCategoriesCol().InsertOne(ctx, cate); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrConflict, "category %q", name)
		}

		return nil, errors.Wrap(err, "insert category")
	}

	s.logger.Info("insert new category", zap.String("name", name))
	return cate, nil
}

// LoadCategoryByName load category by name
func (s *Blog) LoadCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	cate := new(model.Category)
	if err := s.dao.GetCategoriesCol().
		FindOne(ctx, bson.D{{Key: "name", Value: name}}).
		Decode(cate); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrapf(model.ErrNotFound, "category %q", name)
		}

		return nil, errors.Wrapf(err, "decode category %q", name)
	}

	return cate, nil
}

// LoadCategoryTree loads all categories and assembles the parent-pointer
// tree on demand; no cyclic in-memory graph is kept.
func (s *Blog) LoadCategoryTree(ctx context.Context) ([]*dto.CategoryNode, error) {
	cur, err := s.dao.GetCategoriesCol().Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find all categories")
	}

	var cates []*model.Category
	if err = cur.All(ctx, &cates); err != nil {
		return nil, errors.Wrap(err, "load all categories")
	}

	return buildCategoryTree(cates), nil
}

// buildCategoryTree arranges flat categories into root nodes with children.
// Orphans (dangling parent pointers) surface as roots rather than vanishing.
func buildCategoryTree(cates []*model.Category) []*dto.CategoryNode {
	nodes := make(map[string]*dto.CategoryNode, len(cates))
	for _, c := range cates {
		nodes[c.ID.Hex()] = &dto.CategoryNode{Category: c}
	}

	var roots []*dto.CategoryNode
	for _, c := range cates {
		node := nodes[c.ID.Hex()]
		if c.ParentID != nil {
			if parent, ok := nodes[c.ParentID.Hex()]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}

		roots = append(roots, node)
	}

	return roots
}

// bumpCategoryCounts best-effort $inc of the denormalized post counters.
// Drift under concurrency is expected; ReconcileCategoryCounts repairs it.
func (s *Blog) bumpCategoryCounts(ctx context.Context, names []string, delta int64) {
	if len(names) == 0 {
		return
	}

	if _, err := s.dao.GetCategoriesCol().UpdateMany(ctx,
		bson.M{"name": bson.M{"$in": names}},
		bson.M{"$inc": bson.M{"post_count": delta}},
	); err != nil {
		s.logger.Warn("bump category post counts",
			zap.Error(err), zap.Strings("categories", names))
	}
}

// ReconcileCategoryCounts recounts post membership per category and rewrites
// the denormalized counters. Intended to be driven by an external
// maintenance pass, not by the write paths.
func (s *Blog) ReconcileCategoryCounts(ctx context.Context) error {
	cur, err := s.dao.GetCategoriesCol().Find(ctx, bson.D{})
	if err != nil {
		return errors.Wrap(err, "find all categories")
	}

	var cates []*model.Category
	if err = cur.All(ctx, &cates); err != nil {
		return errors.Wrap(err, "load all categories")
	}

	for _, cate := range cates {
		n, err := s.dao.GetPostsCol().CountDocuments(ctx, bson.M{"categories": cate.Name})
		if err != nil {
			return errors.Wrapf(err, "count posts of category %q", cate.Name)
		}

		if n == cate.PostCount {
			continue
		}

		if _, err = s.dao.GetCategoriesCol().UpdateByID(ctx, cate.ID,
			bson.M{"$set": bson.M{"post_count": n}}); err != nil {
			return errors.Wrapf(err, "reconcile category %q", cate.Name)
		}

		s.logger.Info("reconciled category post count",
			zap.String("category", cate.Name),
			zap.Int64("was", cate.PostCount), zap.Int64("now", n))
	}

	return nil
}
