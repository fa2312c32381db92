package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

func newTestComment(parent *primitive.ObjectID, approved bool, ts time.Time) *model.Comment {
	return &model.Comment{
		ID:         primitive.NewObjectID(),
		CreatedAt:  ts,
		Content:    "comment",
		Author:     primitive.NewObjectID(),
		PostID:     primitive.NewObjectID(),
		ParentID:   parent,
		IsApproved: approved,
	}
}

func TestAssembleCommentThread(t *testing.T) {
	ts := time.Now().UTC()
	root1 := newTestComment(nil, true, ts)
	root2 := newTestComment(nil, true, ts.Add(-time.Hour))
	reply1 := newTestComment(&root1.ID, true, ts.Add(time.Minute))
	reply2 := newTestComment(&root1.ID, true, ts.Add(2*time.Minute))

	thread := assembleCommentThread(
		[]*model.Comment{root1, root2},
		[]*model.Comment{reply1, reply2},
		map[string]*dto.AuthorRef{
			root1.Author.Hex(): {Username: "alice"},
		})

	require.Len(t, thread, 2)
	require.Equal(t, root1.ID.Hex(), thread[0].ID)
	require.Equal(t, "alice", thread[0].Author.Username)
	require.Len(t, thread[0].Replies, 2)
	require.Equal(t, reply1.ID.Hex(), thread[0].Replies[0].ID)
	require.Empty(t, thread[1].Replies)
}

// TestAssembleCommentThread_NeverReturnsUnapproved verifies the approval
// guarantee holds at both levels for any approval-state input.
func TestAssembleCommentThread_NeverReturnsUnapproved(t *testing.T) {
	ts := time.Now().UTC()
	approvedRoot := newTestComment(nil, true, ts)
	pendingRoot := newTestComment(nil, false, ts)
	pendingReply := newTestComment(&approvedRoot.ID, false, ts)

	thread := assembleCommentThread(
		[]*model.Comment{approvedRoot, pendingRoot},
		[]*model.Comment{pendingReply},
		nil)

	require.Len(t, thread, 1)
	require.Equal(t, approvedRoot.ID.Hex(), thread[0].ID)
	require.Empty(t, thread[0].Replies)
}

func TestAssembleCommentThread_Caps(t *testing.T) {
	ts := time.Now().UTC()

	var topLevel []*model.Comment
	for i := 0; i < maxTopLevelComments+10; i++ {
		topLevel = append(topLevel, newTestComment(nil, true, ts))
	}

	var replies []*model.Comment
	for i := 0; i < maxRepliesPerComment+10; i++ {
		replies = append(replies, newTestComment(&topLevel[0].ID, true, ts))
	}

	thread := assembleCommentThread(topLevel, replies, nil)
	require.Len(t, thread, maxTopLevelComments)
	require.Len(t, thread[0].Replies, maxRepliesPerComment)
}

func TestAssembleCommentThread_DropsOrphanReplies(t *testing.T) {
	ts := time.Now().UTC()
	root := newTestComment(nil, true, ts)
	unknownParent := primitive.NewObjectID()
	orphan := newTestComment(&unknownParent, true, ts)

	thread := assembleCommentThread(
		[]*model.Comment{root}, []*model.Comment{orphan}, nil)

	require.Len(t, thread, 1)
	require.Empty(t, thread[0].Replies)
}

func TestCollectAuthorIDs_Dedupes(t *testing.T) {
	ts := time.Now().UTC()
	root := newTestComment(nil, true, ts)
	reply := newTestComment(&root.ID, true, ts)
	reply.Author = root.Author

	ids := collectAuthorIDs([]*model.Comment{root}, []*model.Comment{reply})
	require.Len(t, ids, 1)
	require.Equal(t, root.Author, ids[0])
}
