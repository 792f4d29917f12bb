// ABOUTME: Shared helpers that scan the mods directory and render query results
// ABOUTME: Used by list, info, search and shell so they format output identically
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/modscan"
	"github.com/modscmd/modscmd/internal/modview"
	"github.com/modscmd/modscmd/internal/ui"
)

var engine = catalog.NewEngine(nil)

func newScanner() *modscan.Scanner {
	return modscan.NewScanner(modscan.Options{
		HiddenIDs:  settings.cfg.HiddenModIDs,
		Logger:     settings.logger,
		PathSource: settings.modsDirSource,
	})
}

// loadSnapshot scans the configured mods directory.
func loadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	start := time.Now()
	s, err := newScanner().Scan(ctx, settings.modsDir)
	if err != nil {
		return nil, err
	}
	settings.logger.Debug("catalog ready", "mods", s.Len(), "elapsed", time.Since(start))
	return s, nil
}

// validateFormat checks a --format value.
func validateFormat(format string) error {
	if format == "" || modview.ValidFormat(format) {
		return nil
	}
	return fmt.Errorf("invalid --format %q: must be %s", format, strings.Join(modview.Formats, ", "))
}

// cliPageCommand builds page hints that repeat the current invocation.
func cliPageCommand(q catalog.Query, display string, extra string) func(int) string {
	return func(page int) string {
		var cmd string
		switch q.Kind {
		case catalog.SearchText:
			cmd = fmt.Sprintf("modscmd search %s %d", display, page)
		case catalog.ListChildren:
			cmd = fmt.Sprintf("modscmd info %s children %d", q.Text, page)
		default:
			cmd = fmt.Sprintf("modscmd list %d", page)
		}
		return cmd + extra
	}
}

func cliChildrenCommand(id string) string {
	return "modscmd info " + id + " children"
}

// renderQuery executes q against s and writes the result.
func renderQuery(w io.Writer, s *catalog.Snapshot, q catalog.Query, display string, opts modview.Options, info modview.InfoOptions) error {
	result, err := engine.Execute(s, q)
	if err != nil {
		return err
	}

	f := modview.NewFormatter(w, opts)
	if q.Kind == catalog.GetByID {
		return f.RenderInfo(s, result, info)
	}
	return f.RenderPage(s, result, display)
}

// persistentHints returns the flags that page hints must repeat.
func persistentHints(all bool) string {
	var parts []string
	if all {
		parts = append(parts, "--all")
	}
	if envFlag != "" {
		parts = append(parts, "--env "+envFlag)
	}
	if pageSizeFlag > 0 {
		parts = append(parts, fmt.Sprintf("--page-size %d", pageSizeFlag))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

// rawOutput reports whether descriptions should skip markdown rendering.
func rawOutput() bool {
	return !ui.StdoutIsTerminal()
}
