package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
	mongoSDK "github.com/Laisky/laisky-blog-content/library/db/mongo"
)

// CreatePost inserts a new post in draft status.
//
// Derivation order is fixed: validate, slug from title when empty, excerpt
// from content when empty, read time from content.
func (s *Blog) CreatePost(ctx context.Context, input *dto.NewPost) (*model.Post, error) {
	title, err := validatePostTitle(input.Title)
	if err != nil {
		return nil, err
	}
	authorID, err := parseObjectID(input.AuthorID)
	if err != nil {
		return nil, err
	}
	if err = validateCategories(input.Categories); err != nil {
		return nil, err
	}
	if err = validateTags(input.Tags); err != nil {
		return nil, err
	}
	if err = validateFeaturedImage(input.FeaturedImage); err != nil {
		return nil, err
	}
	seo := input.SEO
	if err = validateSEO(&seo); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(title)
	}
	if err = validateSlug(slug); err != nil {
		return nil, err
	}

	excerpt := input.Excerpt
	if excerpt == "" {
		excerpt = DeriveExcerpt(input.Content)
	}
	if err = validateExcerpt(excerpt); err != nil {
		return nil, err
	}

	ts := gutils.Clock.GetUTCNow()
	post := &model.Post{
		ID:            primitive.NewObjectID(),
		CreatedAt:     ts,
		UpdatedAt:     ts,
		Title:         title,
		Slug:          slug,
		Content:       input.Content,
		Excerpt:       excerpt,
		Author:        authorID,
		Categories:    input.Categories,
		Tags:          input.Tags,
		FeaturedImage: input.FeaturedImage,
		Status:        model.PostStatusDraft,
		ReadTime:      ComputeReadTime(input.Content),
		SEO:           seo,
	}

	if _, err = s.dao.GetPostsCol().InsertOne(ctx, post); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrConflict, "post slug %q", slug)
		}

		return nil, errors.Wrap(err, "insert post")
	}

	s.bumpCategoryCounts(ctx, post.Categories, 1)

	s.logger.Info("insert new post",
		zap.String("slug", slug), zap.String("author", input.AuthorID))
	return post, nil
}

// LoadPostByID load post by id
func (s *Blog) LoadPostByID(ctx context.Context, id string) (*model.Post, error) {
	pid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	post := new(model.Post)
	if err = s.dao.GetPostsCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: pid}}).
		Decode(post); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrapf(model.ErrNotFound, "post %s", id)
		}

		return nil, errors.Wrap(err, "decode post")
	}

	return post, nil
}

// LoadPostBySlug load post by slug
func (s *Blog) LoadPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post := new(model.Post)
	if err := s.dao.GetPostsCol().
		FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).
		Decode(post); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrapf(model.ErrNotFound, "post %q", slug)
		}

		return nil, errors.Wrap(err, "decode post")
	}

	return post, nil
}

// ListPosts returns one page of content-stripped posts, newest first, with
// the page descriptor computed from the total match count. An empty status
// lists every lifecycle state.
//
// page and limit must both be >= 1.
func (s *Blog) ListPosts(ctx context.Context,
	status model.PostStatus, page, limit int) ([]*dto.PostSummary, *dto.PageInfo, error) {
	if page < 1 || limit < 1 {
		return nil, nil, model.NewValidationError("page", "page and limit must be >= 1")
	}

	filter := bson.M{}
	if status != "" {
		if err := validatePostStatus(status); err != nil {
			return nil, nil, err
		}
		filter["status"] = status
	}

	total, err := s.dao.GetPostsCol().CountDocuments(ctx, filter)
	if err != nil {
		return nil, nil, errors.Wrap(err, "count posts")
	}

	pageInfo := Paginate(total, page, limit)

	cur, err := s.dao.GetPostsCol().Find(ctx, filter,
		options.Find().
			SetSort(bson.D{
				{Key: "published_at", Value: -1},
				{Key: "created_at", Value: -1},
			}).
			SetSkip(pageInfo.Offset).
			SetLimit(int64(limit)).
			SetProjection(searchProjection(false)),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "find posts page")
	}

	var docs []*searchDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, nil, errors.Wrap(err, "load posts page")
	}

	results, err := s.summarizeSearchDocs(ctx, docs)
	if err != nil {
		return nil, nil, err
	}

	return results, &pageInfo, nil
}

// UpdatePost applies a partial update and recomputes the derived fields on
// the affected write paths: read time and excerpt follow content changes,
// published_at is set on the first transition to published.
func (s *Blog) UpdatePost(ctx context.Context, id string, patch *dto.PostPatch) (*model.Post, error) {
	post, err := s.LoadPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Title != nil {
		title, err := validatePostTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		set["title"] = title
	}
	if patch.Content != nil && *patch.Content != post.Content {
		set["content"] = *patch.Content
		set["read_time"] = ComputeReadTime(*patch.Content)

		if patch.Excerpt == nil {
			excerpt := DeriveExcerpt(*patch.Content)
			if err = validateExcerpt(excerpt); err != nil {
				return nil, err
			}
			set["excerpt"] = excerpt
		}
	}
	if patch.Excerpt != nil {
		if err = validateExcerpt(*patch.Excerpt); err != nil {
			return nil, err
		}
		set["excerpt"] = *patch.Excerpt
	}
	if patch.Categories != nil {
		if err = validateCategories(patch.Categories); err != nil {
			return nil, err
		}
		set["categories"] = patch.Categories
	}
	if patch.Tags != nil {
		if err = validateTags(patch.Tags); err != nil {
			return nil, err
		}
		set["tags"] = patch.Tags
	}
	if patch.FeaturedImage != nil {
		if err = validateFeaturedImage(*patch.FeaturedImage); err != nil {
			return nil, err
		}
		set["featured_image"] = *patch.FeaturedImage
	}
	if patch.SEO != nil {
		if err = validateSEO(patch.SEO); err != nil {
			return nil, err
		}
		set["seo"] = *patch.SEO
	}
	if patch.Status != nil && *patch.Status != post.Status {
		if err = validatePostStatus(*patch.Status); err != nil {
			return nil, err
		}
		if post.Status == model.PostStatusArchived {
			return nil, model.NewValidationError("status", "archived posts cannot change status")
		}
		set["status"] = *patch.Status

		if *patch.Status == model.PostStatusPublished && post.PublishedAt.IsZero() {
			set["published_at"] = gutils.Clock.GetUTCNow()
		}
	}

	set["updated_at"] = gutils.Clock.GetUTCNow()

	if _, err = s.dao.GetPostsCol().UpdateByID(ctx, post.ID, bson.M{"$set": set}); err != nil {
		return nil, errors.Wrapf(err, "update post %s", id)
	}

	// counter drift across the category rename is reconciled separately
	if patch.Categories != nil {
		s.bumpCategoryCounts(ctx, diffStrings(patch.Categories, post.Categories), 1)
		s.bumpCategoryCounts(ctx, diffStrings(post.Categories, patch.Categories), -1)
	}

	s.logger.Info("updated post", zap.String("post", post.Slug))
	return s.LoadPostByID(ctx, id)
}

// DeletePost removes the post and its comments.
func (s *Blog) DeletePost(ctx context.Context, id string) error {
	post, err := s.LoadPostByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err = s.dao.GetPostsCol().DeleteOne(ctx, bson.M{"_id": post.ID}); err != nil {
		return errors.Wrapf(err, "delete post %s", id)
	}
	if _, err = s.dao.GetCommentsCol().DeleteMany(ctx, bson.M{"post": post.ID}); err != nil {
		return errors.Wrapf(err, "delete comments of post %s", id)
	}

	s.bumpCategoryCounts(ctx, post.Categories, -1)

	s.logger.Info("deleted post", zap.String("post", post.Slug))
	return nil
}

// IncrementPostViews bumps the view counter with a storage-level $inc so
// concurrent reads never lose an increment.
func (s *Blog) IncrementPostViews(ctx context.Context, id string) error {
	pid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	return s.dao.IncrementField(ctx, s.dao.GetPostsCol(), pid, "views", 1)
}

// LikePost records userID in the post's like set. Adding the same user twice
// is a no-op ($addToSet).
func (s *Blog) LikePost(ctx context.Context, postID, userID string) error {
	pid, err := parseObjectID(postID)
	if err != nil {
		return err
	}
	uid, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	result, err := s.dao.GetPostsCol().UpdateByID(ctx, pid,
		bson.M{"$addToSet": bson.M{"likes": uid}})
	if err != nil {
		return errors.Wrapf(err, "like post %s", postID)
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "post %s", postID)
	}

	return nil
}

// UnlikePost removes userID from the post's like set.
func (s *Blog) UnlikePost(ctx context.Context, postID, userID string) error {
	pid, err := parseObjectID(postID)
	if err != nil {
		return err
	}
	uid, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	result, err := s.dao.GetPostsCol().UpdateByID(ctx, pid,
		bson.M{"$pull": bson.M{"likes": uid}})
	if err != nil {
		return errors.Wrapf(err, "unlike post %s", postID)
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "post %s", postID)
	}

	return nil
}

// diffStrings returns the entries of a that are not in b.
func diffStrings(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}

	var diff []string
	for _, v := range a {
		if _, ok := inB[v]; !ok {
			diff = append(diff, v)
		}
	}

	return diff
}
