package service

import "github.com/Laisky/laisky-blog-content/internal/blog/dto"

// Paginate converts (page, limit) into an offset window and a total page
// count: totalPages = ceil(totalCount/limit), offset = (page-1)*limit.
//
// page and limit are both expected to be >= 1; this does not clamp.
func Paginate(totalCount int64, page, limit int) dto.PageInfo {
	return dto.PageInfo{
		CurrentPage: page,
		TotalPages:  (totalCount + int64(limit) - 1) / int64(limit),
		Offset:      int64(page-1) * int64(limit),
	}
}
