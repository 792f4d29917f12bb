// ABOUTME: Rebuilds the catalog snapshot and swaps it into a holder
// ABOUTME: Bridges watcher callbacks to the scanner without blocking readers

package watch

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/logging"
)

// ScanFunc builds a fresh snapshot of the mods directory.
type ScanFunc func(ctx context.Context) (*catalog.Snapshot, error)

// Reloader returns an OnChange callback that rescans and installs the new
// snapshot in h. A failed scan keeps the current snapshot. notify, when
// non-nil, is called after a swap that changed the catalog.
func Reloader(scan ScanFunc, h *catalog.Holder, logger *log.Logger, notify func(*catalog.Snapshot)) func(context.Context, []string) error {
	if logger == nil {
		logger = logging.Discard()
	}
	return func(ctx context.Context, changed []string) error {
		s, err := scan(ctx)
		if err != nil {
			return err
		}
		if !h.Replace(s) {
			logger.Debug("mods unchanged after rescan", "files", len(changed))
			return nil
		}
		logger.Info("reloaded mods", "mods", s.Len(), "top-level", s.TopLevelLen())
		if notify != nil {
			notify(s)
		}
		return nil
	}
}
