// ABOUTME: Swap-on-write holder for the current catalog snapshot
// ABOUTME: Readers load the pointer once per query and never see partial updates

package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync/atomic"
)

// Holder owns the current Snapshot reference. Replacing the snapshot is a
// single atomic pointer swap; queries that already loaded the previous
// snapshot keep using it until they finish.
type Holder struct {
	current     atomic.Pointer[Snapshot]
	fingerprint atomic.Pointer[string]
}

// NewHolder returns a Holder initialised with s (which may be nil).
func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	h.Replace(s)
	return h
}

// Load returns the current snapshot.
func (h *Holder) Load() *Snapshot {
	return h.current.Load()
}

// Replace installs s as the current snapshot and reports whether its content
// differs from the snapshot it replaced.
func (h *Holder) Replace(s *Snapshot) bool {
	fp := Fingerprint(s)
	old := h.fingerprint.Swap(&fp)
	h.current.Store(s)
	return old == nil || *old != fp
}

// Fingerprint returns a stable hash of the snapshot content. It changes when
// any record field or the enumeration order changes.
func Fingerprint(s *Snapshot) string {
	h := sha256.New()
	for _, r := range s.All() {
		write := func(fields ...string) {
			for _, f := range fields {
				h.Write([]byte(f))
				h.Write([]byte{0})
			}
		}
		write(r.ID, r.Name, r.Version, r.Description, r.Type, string(r.Environment), r.Parent, r.Source)
		write(strings.Join(r.Authors, "\x01"), strings.Join(r.Contributors, "\x01"), strings.Join(r.Licenses, "\x01"))
		write(strings.Join(r.Children, "\x01"), strings.Join(r.Provides, "\x01"), strings.Join(r.Dependencies, "\x01"))
		for _, c := range r.Contact {
			write(c.Key, c.Value)
		}
		h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))
}
