// ABOUTME: Query descriptor consumed by the engine and its boundary validation
// ABOUTME: Covers list, fuzzy search, lookup by id and child listing

package catalog

import "fmt"

// QueryKind selects how the engine answers a Query.
type QueryKind int

const (
	ListAll QueryKind = iota
	SearchText
	GetByID
	ListChildren
)

func (k QueryKind) String() string {
	switch k {
	case ListAll:
		return "list"
	case SearchText:
		return "search"
	case GetByID:
		return "get"
	case ListChildren:
		return "children"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// Query describes one request against a snapshot.
type Query struct {
	Kind QueryKind

	// Text is the search text for SearchText, the exact id for GetByID and
	// the parent id for ListChildren. An empty SearchText lists everything.
	Text string

	Page     int // 1-based
	PageSize int

	// TopLevelOnly restricts ListAll (and the empty-text SearchText fallback)
	// to records without a parent.
	TopLevelOnly bool

	// Environment, when set, keeps only records declared for exactly that
	// environment.
	Environment Environment
}

// Validate reports whether q is inside the engine's input domain.
func (q Query) Validate() error {
	switch q.Kind {
	case ListAll, SearchText:
	case GetByID, ListChildren:
		if q.Text == "" {
			return &InvalidQueryError{Field: "text", Reason: fmt.Sprintf("is required for %s queries", q.Kind)}
		}
	default:
		return &InvalidQueryError{Field: "kind", Reason: fmt.Sprintf("%s is not supported", q.Kind)}
	}
	if q.PageSize < 1 {
		return &InvalidQueryError{Field: "pageSize", Reason: fmt.Sprintf("must be at least 1, got %d", q.PageSize)}
	}
	if q.Page < 1 {
		return &InvalidQueryError{Field: "page", Reason: fmt.Sprintf("must be at least 1, got %d", q.Page)}
	}
	switch q.Environment {
	case "", EnvUniversal, EnvClient, EnvServer:
	default:
		return &InvalidQueryError{Field: "environment", Reason: fmt.Sprintf("%q is not client, server or universal", q.Environment)}
	}
	return nil
}
