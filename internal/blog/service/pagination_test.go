package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/laisky-blog-content/internal/blog/model"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		total       int64
		page, limit int
		pages       int64
		offset      int64
	}{
		{0, 1, 10, 0, 0},
		{1, 1, 10, 1, 0},
		{10, 1, 10, 1, 0},
		{11, 2, 10, 2, 10},
		{95, 3, 10, 10, 20},
		{100, 1, 1, 100, 0},
	}

	for _, c := range cases {
		info := Paginate(c.total, c.page, c.limit)
		require.Equal(t, c.page, info.CurrentPage, "total=%d", c.total)
		require.Equal(t, c.pages, info.TotalPages, "total=%d limit=%d", c.total, c.limit)
		require.Equal(t, c.offset, info.Offset, "page=%d limit=%d", c.page, c.limit)
	}
}

// ListPosts rejects out-of-range paging before touching storage.
func TestListPosts_RejectsBadWindow(t *testing.T) {
	s := new(Blog)
	ctx := context.Background()

	for _, c := range []struct{ page, limit int }{
		{0, 10}, {1, 0}, {-1, 10}, {1, -5},
	} {
		_, _, err := s.ListPosts(ctx, model.PostStatusPublished, c.page, c.limit)
		require.Error(t, err, "page=%d limit=%d", c.page, c.limit)
		require.True(t, model.IsValidationError(err))
	}

	_, _, err := s.ListPosts(ctx, "pending", 1, 10)
	require.Error(t, err)
	require.True(t, model.IsValidationError(err))
}

// TestPaginate_ZeroPagesOnlyWhenEmpty verifies totalPages == 0 iff totalCount == 0.
func TestPaginate_ZeroPagesOnlyWhenEmpty(t *testing.T) {
	for limit := 1; limit <= 7; limit++ {
		for total := int64(0); total <= 50; total++ {
			info := Paginate(total, 1, limit)
			if total == 0 {
				require.Zero(t, info.TotalPages)
			} else {
				require.Positive(t, info.TotalPages)
			}
		}
	}
}
