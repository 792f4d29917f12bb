// ABOUTME: Slices an ordered sequence into 1-based fixed-size pages
// ABOUTME: Out-of-range pages are empty but still report the real page count

package catalog

// Page is one page of an ordered sequence.
type Page[T any] struct {
	Items    []T
	Index    int // 1-based page requested
	Count    int // total number of pages, 0 when there are no items
	Total    int // total number of items across all pages
	PageSize int
}

// PageCount returns ceil(total / pageSize), or 0 when total is 0.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns page (1-based) of items with pageSize items per page.
// Callers validate page and pageSize first; values below 1 yield an empty page.
// The returned Items is a copy, items is never modified.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	p := Page[T]{
		Index:    page,
		Count:    PageCount(total, pageSize),
		Total:    total,
		PageSize: pageSize,
	}
	if page < 1 || pageSize < 1 || page > p.Count {
		p.Items = []T{}
		return p
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	p.Items = make([]T, end-start)
	copy(p.Items, items[start:end])
	return p
}

// OutOfRange reports whether the requested page lies past the last page of a
// non-empty sequence.
func (p Page[T]) OutOfRange() bool {
	return p.Count > 0 && p.Index > p.Count
}
