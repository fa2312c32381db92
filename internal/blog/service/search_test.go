package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

func TestBuildSearchFilter_PublishedOnly(t *testing.T) {
	filter := buildSearchFilter(&dto.SearchCriteria{}, nil)
	require.Equal(t, model.PostStatusPublished, filter["status"])
	require.NotContains(t, filter, "$text")
	require.NotContains(t, filter, "categories")
}

func TestBuildSearchFilter_CategoriesOnly(t *testing.T) {
	filter := buildSearchFilter(&dto.SearchCriteria{
		Categories: []string{"Technology"},
	}, nil)

	require.Equal(t, bson.M{"$in": []string{"Technology"}}, filter["categories"])
	require.Equal(t, model.PostStatusPublished, filter["status"])
}

func TestBuildSearchFilter_AllCriteria(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 6, 0)
	minViews := int64(100)
	hasImage := true
	authorID := primitive.NewObjectID()

	filter := buildSearchFilter(&dto.SearchCriteria{
		Text:       "mongodb",
		Categories: []string{"Technology", "Databases"},
		Tags:       []string{"nosql"},
		Author:     "alice",
		DateFrom:   &from,
		DateTo:     &to,
		MinViews:   &minViews,
		HasImage:   &hasImage,
	}, []primitive.ObjectID{authorID})

	require.Equal(t, bson.M{"$search": "mongodb"}, filter["$text"])
	require.Equal(t, bson.M{"$in": []string{"nosql"}}, filter["tags"])
	require.Equal(t, bson.M{"$in": []primitive.ObjectID{authorID}}, filter["author"])
	require.Equal(t, bson.M{"$gte": from, "$lte": to}, filter["published_at"])
	require.Equal(t, bson.M{"$gte": minViews}, filter["views"])
	require.Equal(t, bson.M{"$exists": true, "$ne": ""}, filter["featured_image"])
}

func TestBuildSearchFilter_WithoutImage(t *testing.T) {
	hasImage := false
	filter := buildSearchFilter(&dto.SearchCriteria{HasImage: &hasImage}, nil)
	require.Equal(t, bson.M{"$in": bson.A{nil, ""}}, filter["featured_image"])
}

func TestBuildSimilarFilter_ExcludesSource(t *testing.T) {
	sourceID := primitive.NewObjectID()
	filter := buildSimilarFilter(sourceID, []string{"Technology"}, nil)

	// the source never matches itself, even though it shares all its own
	// categories and tags trivially
	require.Equal(t, bson.M{"$ne": sourceID}, filter["_id"])
	require.Equal(t, model.PostStatusPublished, filter["status"])
}

func TestBuildSimilarFilter_OverlapShape(t *testing.T) {
	sourceID := primitive.NewObjectID()

	filter := buildSimilarFilter(sourceID, []string{"Technology"}, []string{"nosql"})
	overlap, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, overlap, 2)
	require.Equal(t, bson.M{"$in": []string{"Technology"}}, overlap[0]["categories"])
	require.Equal(t, bson.M{"$in": []string{"nosql"}}, overlap[1]["tags"])

	// without tags only the category clause remains
	filter = buildSimilarFilter(sourceID, []string{"Technology"}, nil)
	require.Len(t, filter["$or"].([]bson.M), 1)
}

func TestSearchSort(t *testing.T) {
	// free text ranks by relevance, then publish date
	sort := searchSort(true)
	require.Len(t, sort, 2)
	require.Equal(t, "text_score", sort[0].Key)
	require.Equal(t, "published_at", sort[1].Key)
	require.Equal(t, -1, sort[1].Value)

	// without text, strictly newest first
	sort = searchSort(false)
	require.Equal(t, bson.D{{Key: "published_at", Value: -1}}, sort)
}

func TestSearchProjection_StripsContent(t *testing.T) {
	projection := searchProjection(false)
	require.Equal(t, 0, projection["content"])
	require.NotContains(t, projection, "text_score")

	projection = searchProjection(true)
	require.Equal(t, 0, projection["content"])
	require.Contains(t, projection, "text_score")
}
