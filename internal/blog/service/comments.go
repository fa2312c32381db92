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

const (
	// maxTopLevelComments presentation cap on root comments per thread call
	maxTopLevelComments = 50
	// maxRepliesPerComment presentation cap on direct replies per root comment
	maxRepliesPerComment = 50
)

// CreateComment inserts a comment on a post.
//
// A parent comment must exist and belong to the same post. Comments from
// authors holding the admin or moderator role are approved immediately;
// everyone else waits for moderation.
func (s *Blog) CreateComment(ctx context.Context, input *dto.NewComment) (*model.Comment, error) {
	content, err := validateCommentContent(input.Content)
	if err != nil {
		return nil, err
	}
	postID, err := parseObjectID(input.PostID)
	if err != nil {
		return nil, err
	}

	author, err := s.LoadUserByID(ctx, input.AuthorID)
	if err != nil {
		return nil, errors.Wrap(err, "load comment author")
	}

	post := new(model.Post)
	if err = s.dao.GetPostsCol().
		FindOne(ctx, bson.M{"_id": postID}).
		Decode(post); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrapf(model.ErrNotFound, "post %s", input.PostID)
		}

		return nil, errors.Wrap(err, "check post existence")
	}

	ts := gutils.Clock.GetUTCNow()
	comment := &model.Comment{
		ID:         primitive.NewObjectID(),
		CreatedAt:  ts,
		UpdatedAt:  ts,
		Content:    content,
		Author:     author.ID,
		PostID:     post.ID,
		IsApproved: author.IsTrusted(),
	}

	if input.ParentID != "" {
		parentID, err := parseObjectID(input.ParentID)
		if err != nil {
			return nil, err
		}

		// the parent must belong to the same post
		parent := new(model.Comment)
		if err = s.dao.GetCommentsCol().FindOne(ctx, bson.M{
			"_id":  parentID,
			"post": post.ID,
		}).Decode(parent); err != nil {
			if mongoSDK.NotFound(err) {
				return nil, model.NewValidationError("parent",
					"comment not found or belongs to another post")
			}

			return nil, errors.Wrap(err, "fetch parent comment")
		}

		comment.ParentID = &parent.ID
	}

	if _, err = s.dao.GetCommentsCol().InsertOne(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "insert comment")
	}

	s.logger.Info("new comment created",
		zap.String("post", post.ID.Hex()),
		zap.String("comment", comment.ID.Hex()),
		zap.Bool("auto_approved", comment.IsApproved))
	return comment, nil
}

// ApproveComment marks a comment approved.
func (s *Blog) ApproveComment(ctx context.Context, id string) (*model.Comment, error) {
	commentID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	updated := new(model.Comment)
	if err = s.dao.GetCommentsCol().FindOneAndUpdate(ctx,
		bson.M{"_id": commentID},
		bson.M{"$set": bson.M{
			"is_approved": true,
			"updated_at":  gutils.Clock.GetUTCNow(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(updated); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrapf(model.ErrNotFound, "comment %s", id)
		}

		return nil, errors.Wrap(err, "approve comment")
	}

	s.logger.Info("comment approved", zap.String("comment", id))
	return updated, nil
}

// LoadCommentByID fetches a single comment regardless of approval state.
func (s *Blog) LoadCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	commentID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	comment := new(model.Comment)
	if err = s.dao.GetCommentsCol().
		FindOne(ctx, bson.M{"_id": commentID}).
		Decode(comment); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrapf(model.ErrNotFound, "comment %s", id)
		}

		return nil, errors.Wrap(err, "fetch comment")
	}

	return comment, nil
}

// DeleteComment removes a comment and its direct replies.
func (s *Blog) DeleteComment(ctx context.Context, id string) error {
	commentID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	ret, err := s.dao.GetCommentsCol().DeleteOne(ctx, bson.M{"_id": commentID})
	if err != nil {
		return errors.Wrap(err, "delete comment")
	}
	if ret.DeletedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "comment %s", id)
	}

	if _, err = s.dao.GetCommentsCol().
		DeleteMany(ctx, bson.M{"parent": commentID}); err != nil {
		return errors.Wrap(err, "delete replies")
	}

	s.logger.Info("comment deleted", zap.String("comment", id))
	return nil
}

// LikeComment bumps the like counter with an atomic $inc.
func (s *Blog) LikeComment(ctx context.Context, id string) error {
	commentID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	return s.dao.IncrementField(ctx, s.dao.GetCommentsCol(), commentID, "likes", 1)
}

// LoadCommentThread returns the approved comment tree of a post: top-level
// comments newest first (at most 50), each carrying its approved direct
// replies oldest first (at most 50), authors resolved.
//
// Only one reply level is expanded; a caller wanting deeper nesting invokes
// the builder again rooted at a reply. Unapproved comments never appear at
// either level.
func (s *Blog) LoadCommentThread(ctx context.Context, postID string) ([]*dto.CommentNode, error) {
	pid, err := parseObjectID(postID)
	if err != nil {
		return nil, err
	}

	cur, err := s.dao.GetCommentsCol().Find(ctx,
		bson.M{
			"post":        pid,
			"parent":      nil,
			"is_approved": true,
		},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(maxTopLevelComments),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find top-level comments")
	}

	var topLevel []*model.Comment
	if err = cur.All(ctx, &topLevel); err != nil {
		return nil, errors.Wrap(err, "load top-level comments")
	}

	if len(topLevel) == 0 {
		return []*dto.CommentNode{}, nil
	}

	parentIDs := make([]primitive.ObjectID, 0, len(topLevel))
	for _, c := range topLevel {
		parentIDs = append(parentIDs, c.ID)
	}

	replyCur, err := s.dao.GetCommentsCol().Find(ctx,
		bson.M{
			"parent":      bson.M{"$in": parentIDs},
			"is_approved": true,
		},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find replies")
	}

	var replies []*model.Comment
	if err = replyCur.All(ctx, &replies); err != nil {
		return nil, errors.Wrap(err, "load replies")
	}

	authorIDs := collectAuthorIDs(topLevel, replies)
	authors, err := s.ResolveAuthors(ctx, authorIDs)
	if err != nil {
		return nil, errors.Wrap(err, "resolve comment authors")
	}

	return assembleCommentThread(topLevel, replies, authors), nil
}

// collectAuthorIDs gathers the distinct author references of both levels.
func collectAuthorIDs(topLevel, replies []*model.Comment) []primitive.ObjectID {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	for _, batch := range [][]*model.Comment{topLevel, replies} {
		for _, c := range batch {
			if _, ok := seen[c.Author]; ok {
				continue
			}
			seen[c.Author] = struct{}{}
			ids = append(ids, c.Author)
		}
	}

	return ids
}

// assembleCommentThread arranges flat comment slices into the bounded
// two-level presentation tree. Unapproved comments are dropped here again so
// the guarantee does not depend on the queries alone.
func assembleCommentThread(topLevel, replies []*model.Comment,
	authors map[string]*dto.AuthorRef) []*dto.CommentNode {
	nodes := make(map[string]*dto.CommentNode, len(topLevel))
	thread := make([]*dto.CommentNode, 0, len(topLevel))

	for _, c := range topLevel {
		if !c.IsApproved || c.ParentID != nil {
			continue
		}
		if len(thread) >= maxTopLevelComments {
			break
		}

		node := &dto.CommentNode{
			ID:        c.ID.Hex(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Likes:     c.Likes,
			Author:    authors[c.Author.Hex()],
		}
		nodes[node.ID] = node
		thread = append(thread, node)
	}

	for _, c := range replies {
		if !c.IsApproved || c.ParentID == nil {
			continue
		}

		parent, ok := nodes[c.ParentID.Hex()]
		if !ok || len(parent.Replies) >= maxRepliesPerComment {
			continue
		}

		parent.Replies = append(parent.Replies, &dto.CommentNode{
			ID:        c.ID.Hex(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Likes:     c.Likes,
			Author:    authors[c.Author.Hex()],
		})
	}

	return thread
}
