package datatable

import "strconv"

const (
	// PageRangeDisplayed is the width of the window around the selected page.
	PageRangeDisplayed = 5
	// MarginPagesDisplayed is how many pages are always shown at each end.
	MarginPagesDisplayed = 2
)

// PageItem is one slot of the page selector. Index is zero-based; Break
// items stand for a run of hidden pages.
type PageItem struct {
	Index    int
	Break    bool
	Selected bool
}

// Label is the text shown for the item.
func (it PageItem) Label() string {
	if it.Break {
		return "…"
	}
	return strconv.Itoa(PageNumber(it.Index))
}

// Window lists the visible selector slots: the first and last margin pages,
// rangeDisplayed pages around selected, and one break per hidden gap. A gap
// of a single page shows that page instead.
func Window(selected, pageCount, rangeDisplayed, margin int) []PageItem {
	if pageCount <= 0 {
		return nil
	}
	selected = clamp(selected, 0, pageCount-1)
	rangeDisplayed = max(rangeDisplayed, 1)
	margin = max(margin, 0)

	lo := clamp(selected-rangeDisplayed/2, 0, max(pageCount-rangeDisplayed, 0))
	hi := min(lo+rangeDisplayed-1, pageCount-1)

	visible := func(i int) bool {
		return i < margin || i >= pageCount-margin || (i >= lo && i <= hi)
	}

	var out []PageItem
	for i := 0; i < pageCount; i++ {
		if visible(i) {
			out = append(out, PageItem{Index: i, Selected: i == selected})
			continue
		}
		gapEnd := i
		for gapEnd+1 < pageCount && !visible(gapEnd+1) {
			gapEnd++
		}
		if gapEnd == i {
			out = append(out, PageItem{Index: i, Selected: i == selected})
			continue
		}
		out = append(out, PageItem{Index: i, Break: true})
		i = gapEnd
	}
	return out
}

// PageSelector is the zero-based page control. It never changes pages
// itself; it reports the requested index to onChange.
type PageSelector struct {
	Selected  int
	PageCount int
	onChange  func(index int)
}

// NewPageSelector builds a selector for state, wired to report one-based
// page numbers to onPageChange. A nil onPageChange is allowed.
func NewPageSelector(state PageState, onPageChange func(page int)) PageSelector {
	return PageSelector{
		Selected:  SelectedIndex(state.Current),
		PageCount: state.TotalPages,
		onChange: func(index int) {
			if onPageChange != nil {
				onPageChange(PageNumber(index))
			}
		},
	}
}

// Select requests page index. Out-of-range indexes and the current
// selection are ignored. It reports whether a request was emitted.
func (s PageSelector) Select(index int) bool {
	if index < 0 || index >= s.PageCount || index == s.Selected {
		return false
	}
	if s.onChange != nil {
		s.onChange(index)
	}
	return true
}

func (s PageSelector) Next() bool  { return s.Select(s.Selected + 1) }
func (s PageSelector) Prev() bool  { return s.Select(s.Selected - 1) }
func (s PageSelector) First() bool { return s.Select(0) }
func (s PageSelector) Last() bool  { return s.Select(s.PageCount - 1) }

// Items is the visible window for the current selection.
func (s PageSelector) Items() []PageItem {
	return Window(s.Selected, s.PageCount, PageRangeDisplayed, MarginPagesDisplayed)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
