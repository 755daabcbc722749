package domain

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageQuery selects a 1-indexed page.
type PageQuery struct {
	Page    int
	PerPage int
}

// Normalize clamps the query into a usable range.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return q
}

// Offset is the number of rows skipped before this page.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	Total       int64 `json:"total"`
	LastPage    int   `json:"lastPage"`
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	Prev        *int  `json:"prev"`
	Next        *int  `json:"next"`
}

// Page is one page of results plus its metadata.
type Page[T any] struct {
	Meta PageMeta `json:"meta"`
	Data []T      `json:"data"`
}

// NewPageMeta computes the pagination metadata for total matching rows.
func NewPageMeta(total int64, q PageQuery) PageMeta {
	lastPage := 0
	if total > 0 && q.PerPage > 0 {
		lastPage = int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	}

	meta := PageMeta{
		Total:       total,
		LastPage:    lastPage,
		CurrentPage: q.Page,
		PerPage:     q.PerPage,
	}

	if q.Page > 1 {
		prev := q.Page - 1
		meta.Prev = &prev
	}
	if q.Page < lastPage {
		next := q.Page + 1
		meta.Next = &next
	}

	return meta
}
