package http

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination points at the neighbouring pages. next is present iff
// skip+limit < total, prev iff skip > 0, so the last page has no next and
// page 1 has no prev.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

func NewPagination(page, limit, total int) Pagination {
	skip := (page - 1) * limit
	var p Pagination
	if skip+limit < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if skip > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
