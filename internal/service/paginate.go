package service

import "github.com/jask/mlmdash/internal/datatable"

// Paginate slices items in memory and describes the result for client-side
// table mode. page is one-based and clamped into range.
func Paginate[T any](items []T, page, perPage int) ([]T, datatable.Pagination) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	page = clampPage(page, total, perPage)

	desc := datatable.Pagination{CurrentPage: page, TotalPages: totalPages, Total: total, PerPage: perPage}
	start := (page - 1) * perPage
	if start >= total {
		return nil, desc
	}
	end := min(start+perPage, total)
	return items[start:end], desc
}
