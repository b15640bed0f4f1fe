// Package pagination provides page/limit normalization and page math
// shared by listing endpoints.
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page describes one page of a listing.
type Page struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// Normalize clamps page and limit to sane bounds.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset converts a normalized page/limit pair into a record offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// New builds page metadata for a listing of total records.
func New(total int64, page, limit int) Page {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return Page{Total: total, Page: page, Limit: limit, Pages: pages}
}
