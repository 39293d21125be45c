// internal/api/types/response.go
package types

// PaginatedResponse is one page of a listing together with its window.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
	HasMore    bool  `json:"has_more"`
}

// NewPage builds a page. Data is never nil, so an empty page encodes as [].
func NewPage[T any](data []T, limit, offset int, total int64) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data:       data,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
		HasMore:    int64(offset+len(data)) < total,
	}
}
