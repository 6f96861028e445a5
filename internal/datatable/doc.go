// Package datatable renders tabular data with column definitions, row actions,
// loading/error/empty states and pagination.
//
// Allowed here:
// - turning Props into a View and drawing it (lipgloss or plain text)
// - translating key presses into the caller's callbacks
//
// Not allowed here:
// - owning the dataset or the current page, fetching data, retrying, logging
package datatable
