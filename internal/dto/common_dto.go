package dto

const (
	DefaultPage  = 1
	DefaultLimit = 15
	MaxLimit     = 100
)

// ListQuery is the shared pagination/search fragment embedded by every
// resource filter. Limits are clamped rather than rejected so that clients
// asking for oversized pages still get a valid response.
type ListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

func NewPaginationMeta(q ListQuery, totalItems int64) PaginationMeta {
	totalPages := int(totalItems) / q.Limit
	if int(totalItems)%q.Limit != 0 {
		totalPages++
	}

	return PaginationMeta{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		Limit:       q.Limit,
	}
}

type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}
