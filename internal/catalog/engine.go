// ABOUTME: Query engine orchestrating store lookup, matching, ranking and paging
// ABOUTME: Stateless; every call works on the snapshot it was handed

package catalog

// PageResult is the engine's answer to one Query.
type PageResult struct {
	Kind  QueryKind
	Query string

	Items        []Hit
	PageIndex    int
	PageCount    int
	TotalMatches int
	PageSize     int
}

// OutOfRange reports whether the requested page lies past the last page.
func (r PageResult) OutOfRange() bool {
	return r.PageCount > 0 && r.PageIndex > r.PageCount
}

// Records returns the records of the page in order.
func (r PageResult) Records() []*ComponentRecord {
	out := make([]*ComponentRecord, len(r.Items))
	for i, h := range r.Items {
		out[i] = h.Record
	}
	return out
}

// Engine answers queries against snapshots. It holds no per-query state and
// may be shared between goroutines.
type Engine struct {
	matcher *Matcher
}

// NewEngine creates an Engine. A nil matcher uses NewMatcher().
func NewEngine(m *Matcher) *Engine {
	if m == nil {
		m = NewMatcher()
	}
	return &Engine{matcher: m}
}

// Execute runs q against s. A nil or empty snapshot yields zero matches.
// The only error is an InvalidQueryError for queries outside the input domain.
func (e *Engine) Execute(s *Snapshot, q Query) (PageResult, error) {
	if err := q.Validate(); err != nil {
		return PageResult{}, err
	}

	var hits []Hit
	switch q.Kind {
	case GetByID:
		if rec, ok := s.Lookup(q.Text); ok {
			hits = []Hit{{Record: rec}}
		}
	case ListChildren:
		hits = ListingHits(filterEnvironment(s.Children(q.Text), q.Environment))
	case SearchText:
		if q.Text == "" {
			hits = e.listing(s, q)
			break
		}
		hits = e.search(s, q)
	default:
		hits = e.listing(s, q)
	}

	page := Paginate(hits, q.Page, q.PageSize)
	return PageResult{
		Kind:         q.Kind,
		Query:        q.Text,
		Items:        page.Items,
		PageIndex:    page.Index,
		PageCount:    page.Count,
		TotalMatches: page.Total,
		PageSize:     page.PageSize,
	}, nil
}

func (e *Engine) listing(s *Snapshot, q Query) []Hit {
	records := s.All()
	if q.TopLevelOnly {
		records = s.TopLevel()
	}
	return ListingHits(filterEnvironment(records, q.Environment))
}

func (e *Engine) search(s *Snapshot, q Query) []Hit {
	var hits []Hit
	for _, rec := range filterEnvironment(s.All(), q.Environment) {
		if m, ok := e.matcher.Score(rec, q.Text); ok {
			hits = append(hits, Hit{Record: rec, Match: m})
		}
	}
	RankHits(hits)
	return hits
}

func filterEnvironment(records []*ComponentRecord, env Environment) []*ComponentRecord {
	if env == "" {
		return records
	}
	out := make([]*ComponentRecord, 0, len(records))
	for _, r := range records {
		if r.Environment == env {
			out = append(out, r)
		}
	}
	return out
}
