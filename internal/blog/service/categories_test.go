package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

func TestBuildCategoryTree(t *testing.T) {
	root := &model.Category{ID: primitive.NewObjectID(), Name: "Technology"}
	child := &model.Category{ID: primitive.NewObjectID(), Name: "Databases", ParentID: &root.ID}
	grandchild := &model.Category{ID: primitive.NewObjectID(), Name: "MongoDB", ParentID: &child.ID}
	lone := &model.Category{ID: primitive.NewObjectID(), Name: "Travel"}

	tree := buildCategoryTree([]*model.Category{root, child, grandchild, lone})

	require.Len(t, tree, 2)
	require.Equal(t, "Technology", tree[0].Category.Name)
	require.Len(t, tree[0].Children, 1)
	require.Equal(t, "Databases", tree[0].Children[0].Category.Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	require.Equal(t, "Travel", tree[1].Category.Name)
}

// dangling parent pointers surface as roots instead of vanishing
func TestBuildCategoryTree_Orphans(t *testing.T) {
	missing := primitive.NewObjectID()
	orphan := &model.Category{ID: primitive.NewObjectID(), Name: "Lost", ParentID: &missing}

	tree := buildCategoryTree([]*model.Category{orphan})
	require.Len(t, tree, 1)
	require.Equal(t, "Lost", tree[0].Category.Name)
}
