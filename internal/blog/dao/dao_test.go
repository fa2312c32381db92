package dao

import (
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

func TestMatchedOrNotFound(t *testing.T) {
	id := primitive.NewObjectID()

	require.NoError(t, matchedOrNotFound(1, id))

	err := matchedOrNotFound(0, id)
	require.Error(t, err)
	require.True(t, errors.Is(err, model.ErrNotFound))
	require.Contains(t, err.Error(), id.Hex())
}
