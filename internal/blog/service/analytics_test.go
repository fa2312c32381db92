package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

func TestEngagementScore(t *testing.T) {
	require.Equal(t, int64(120), engagementScore(100, 4))
	require.Equal(t, int64(130), engagementScore(80, 10))
	// fewer views can outrank more views through likes
	require.Greater(t, engagementScore(80, 10), engagementScore(100, 4))
	require.Equal(t, int64(0), engagementScore(0, 0))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	require.Equal(t, 1.5, daysSince(now, now.Add(-36*time.Hour)))
	require.Zero(t, daysSince(now, time.Time{}))
}

// TestLookupAuthor_KeepsDanglingRows verifies the identity join never drops
// a row whose author was hard deleted; the author degrades to null instead.
func TestLookupAuthor_KeepsDanglingRows(t *testing.T) {
	stages := lookupAuthor("author")
	require.Len(t, stages, 2)

	lookup, ok := stages[0]["$lookup"].(bson.M)
	require.True(t, ok)
	require.Equal(t, "users", lookup["from"])
	require.Equal(t, "author", lookup["localField"])
	require.Equal(t, "_id", lookup["foreignField"])
	require.Equal(t, "author", lookup["as"])

	unwind, ok := stages[1]["$unwind"].(bson.M)
	require.True(t, ok)
	require.Equal(t, "$author", unwind["path"])
	require.Equal(t, true, unwind["preserveNullAndEmptyArrays"])

	// the statistics pipeline joins on its group key instead
	require.Equal(t, "_id", lookupAuthor("_id")[0]["$lookup"].(bson.M)["localField"])
}

// TestTotalLikesFixture verifies that like-set cardinality sums the way the
// author statistics accumulate it: sizes {2, 0, 5} total 7.
func TestTotalLikesFixture(t *testing.T) {
	likeSet := func(n int) []primitive.ObjectID {
		ids := make([]primitive.ObjectID, n)
		for i := range ids {
			ids[i] = primitive.NewObjectID()
		}
		return ids
	}

	posts := []*model.Post{
		{Likes: likeSet(2)},
		{Likes: likeSet(0)},
		{Likes: likeSet(5)},
	}

	var total int
	for _, p := range posts {
		total += p.LikesCount()
	}
	require.Equal(t, 7, total)
}
