package datatable

import "fmt"

// Pagination is the caller-supplied descriptor used in client-side mode.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
}

// PageState is the resolved footer input. Current is one-based.
type PageState struct {
	Current    int
	TotalPages int
	Total      int
	PerPage    int
}

// Start is the one-based position of the first item on the current page.
func (s PageState) Start() int {
	return (s.Current-1)*s.PerPage + 1
}

// End is the one-based position of the last item on the current page.
func (s PageState) End() int {
	return min(s.Current*s.PerPage, s.Total)
}

// Summary is the item-range text shown beside the page selector.
func (s PageState) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d items", s.Start(), s.End(), s.Total)
}

// Mode is either ServerSide or ClientSide.
type Mode interface {
	// Resolve returns the footer state; ok is false when no footer is drawn.
	Resolve() (state PageState, ok bool)
	isMode()
}

// ServerSide computes page count from a total row count at the source.
type ServerSide struct {
	TotalCount   int
	ItemsPerPage int
	CurrentPage  int
}

// ClientSide takes every number from a ready-made descriptor.
type ClientSide struct {
	Descriptor *Pagination
}

func (ServerSide) isMode() {}
func (ClientSide) isMode() {}

func (m ServerSide) Resolve() (PageState, bool) {
	if m.ItemsPerPage <= 0 || m.TotalCount <= 0 {
		return PageState{}, false
	}
	totalPages := (m.TotalCount + m.ItemsPerPage - 1) / m.ItemsPerPage
	if totalPages <= 1 {
		return PageState{}, false
	}
	return PageState{
		Current:    min(max(m.CurrentPage, 1), totalPages),
		TotalPages: totalPages,
		Total:      m.TotalCount,
		PerPage:    m.ItemsPerPage,
	}, true
}

func (m ClientSide) Resolve() (PageState, bool) {
	d := m.Descriptor
	if d == nil || d.TotalPages <= 1 {
		return PageState{}, false
	}
	return PageState{
		Current:    min(max(d.CurrentPage, 1), d.TotalPages),
		TotalPages: d.TotalPages,
		Total:      d.Total,
		PerPage:    d.PerPage,
	}, true
}

// ResolveMode picks the pagination mode from Props once, at the entry point.
// Server-side mode reads only the current page from Props.Pagination and
// defaults it to 1.
func ResolveMode(p Props) Mode {
	if p.ServerSide {
		current := 1
		if p.Pagination != nil && p.Pagination.CurrentPage > 0 {
			current = p.Pagination.CurrentPage
		}
		return ServerSide{TotalCount: p.TotalCount, ItemsPerPage: p.ItemsPerPage, CurrentPage: current}
	}
	return ClientSide{Descriptor: p.Pagination}
}

// SelectedIndex converts a one-based page number to the selector's zero-based index.
func SelectedIndex(page int) int {
	return max(page-1, 0)
}

// PageNumber converts the selector's zero-based index to a one-based page number.
func PageNumber(index int) int {
	return index + 1
}
