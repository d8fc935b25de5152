package model

// Pagination carries the metadata returned next to every paginated list.
// TotalPages is the ceiling of TotalCount/PageSize; the Has* flags are
// derived from the requested page so the dashboard can enable or
// disable its pager buttons without re-deriving anything.
type Pagination struct {
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagination derives full pagination metadata from a total row count
// and the requested page. pageNumber and pageSize below 1 are clamped
// to 1 so the arithmetic never divides by zero.
func NewPagination(totalCount, pageNumber, pageSize int) Pagination {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if totalCount < 0 {
		totalCount = 0
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	return Pagination{
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasNextPage:     pageNumber < totalPages,
		HasPreviousPage: pageNumber > 1,
	}
}

// Page is a single page of items plus its pagination metadata.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPage builds a Page, substituting an empty (non-nil) slice for nil
// items so JSON renders [] rather than null.
func NewPage[T any](items []T, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: p}
}
