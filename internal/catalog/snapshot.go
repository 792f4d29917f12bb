// ABOUTME: Immutable snapshot of installed mod records (the record store)
// ABOUTME: Provides O(1) lookup by id and stable enumeration order

package catalog

import "fmt"

// Snapshot is an immutable, ordered set of records. No two records share an id.
// A Snapshot is safe for concurrent reads; it is never mutated after NewSnapshot.
type Snapshot struct {
	records  []*ComponentRecord
	byID     map[string]int
	topLevel []*ComponentRecord
	children map[string][]*ComponentRecord
}

// NewSnapshot builds a snapshot from records in their enumeration order.
// The records are copied so later changes by the caller are not observed.
func NewSnapshot(records []ComponentRecord) (*Snapshot, error) {
	s := &Snapshot{
		records:  make([]*ComponentRecord, 0, len(records)),
		byID:     make(map[string]int, len(records)),
		children: make(map[string][]*ComponentRecord),
	}

	for i := range records {
		rec := cloneRecord(records[i])
		if rec.ID == "" {
			return nil, fmt.Errorf("record at position %d: %w", i, ErrEmptyID)
		}
		if prev, ok := s.byID[rec.ID]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateID, rec.ID, prev, i)
		}
		s.byID[rec.ID] = len(s.records)
		s.records = append(s.records, rec)
	}

	for _, rec := range s.records {
		if rec.IsTopLevel() {
			s.topLevel = append(s.topLevel, rec)
			continue
		}
		s.children[rec.Parent] = append(s.children[rec.Parent], rec)
	}

	return s, nil
}

// MustNewSnapshot is like NewSnapshot but panics on invalid input.
func MustNewSnapshot(records []ComponentRecord) *Snapshot {
	s, err := NewSnapshot(records)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the record with the given id.
func (s *Snapshot) Lookup(id string) (*ComponentRecord, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.records[i], true
}

// All returns every record in enumeration order. Callers must not modify the slice.
func (s *Snapshot) All() []*ComponentRecord {
	if s == nil {
		return nil
	}
	return s.records
}

// TopLevel returns the records without a parent, in enumeration order.
func (s *Snapshot) TopLevel() []*ComponentRecord {
	if s == nil {
		return nil
	}
	return s.topLevel
}

// Children returns the direct children of id, in enumeration order.
func (s *Snapshot) Children(id string) []*ComponentRecord {
	if s == nil {
		return nil
	}
	return s.children[id]
}

// Descendants returns every record below id, depth first.
func (s *Snapshot) Descendants(id string) []*ComponentRecord {
	var out []*ComponentRecord
	for _, child := range s.Children(id) {
		out = append(out, child)
		out = append(out, s.Descendants(child.ID)...)
	}
	return out
}

// Position returns the enumeration index of id, or -1.
func (s *Snapshot) Position(id string) int {
	if s == nil {
		return -1
	}
	if i, ok := s.byID[id]; ok {
		return i
	}
	return -1
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// TopLevelLen returns the number of records without a parent.
func (s *Snapshot) TopLevelLen() int {
	if s == nil {
		return 0
	}
	return len(s.topLevel)
}

func cloneRecord(r ComponentRecord) *ComponentRecord {
	c := r
	c.Authors = append([]string(nil), r.Authors...)
	c.Contributors = append([]string(nil), r.Contributors...)
	c.Licenses = append([]string(nil), r.Licenses...)
	c.Contact = append([]ContactEntry(nil), r.Contact...)
	c.Children = append([]string(nil), r.Children...)
	c.Provides = append([]string(nil), r.Provides...)
	c.Dependencies = append([]string(nil), r.Dependencies...)
	return &c
}
