// ABOUTME: Scans a mods directory of jar archives to build a catalog snapshot
// ABOUTME: Reads archives concurrently, deduplicates versions and hides configured ids

package modscan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Options configures a Scanner.
type Options struct {
	HiddenIDs   []string    // mod ids never shown
	Logger      *log.Logger // nil discards log output
	Concurrency int         // archives read in parallel, 0 uses GOMAXPROCS
	PathSource  string      // how the mods dir was configured, used in errors
}

// Scanner scans a mods directory to build a snapshot.
type Scanner struct {
	hidden map[string]struct{}
	logger *log.Logger
	limit  int
	source string
}

// NewScanner creates a new Scanner.
func NewScanner(opts Options) *Scanner {
	hidden := make(map[string]struct{}, len(opts.HiddenIDs))
	for _, id := range opts.HiddenIDs {
		if id = strings.TrimSpace(id); id != "" {
			hidden[id] = struct{}{}
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	source := opts.PathSource
	if source == "" {
		source = "default"
	}
	return &Scanner{hidden: hidden, logger: logger, limit: limit, source: source}
}

// Scan reads every .jar in dir and returns the resulting snapshot.
func (s *Scanner) Scan(ctx context.Context, dir string) (*catalog.Snapshot, error) {
	records, err := s.ScanRecords(ctx, dir)
	if err != nil {
		return nil, err
	}
	return catalog.NewSnapshot(records)
}

// ScanRecords reads every .jar in dir and returns the arranged records in
// snapshot order. Unreadable archives are logged and skipped. Multiple jars
// declaring the same id are deduplicated, keeping the highest version.
func (s *Scanner) ScanRecords(ctx context.Context, dir string) ([]catalog.ComponentRecord, error) {
	start := time.Now()

	jars, err := listJars(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ModsDirNotFoundError{Path: dir, Source: s.source}
		}
		return nil, fmt.Errorf("list mods directory: %w", err)
	}

	perJar := make([][]*descriptor, len(jars))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, name := range jars {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			descs, err := readArchive(filepath.Join(dir, name), name)
			if err != nil {
				s.logger.Warn("skipping mod archive", "path", name, "error", err)
				return nil
			}
			perJar[i] = descs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	descs := s.dedupe(perJar)
	for id := range descs {
		if _, ok := s.hidden[id]; ok {
			delete(descs, id)
		}
	}

	records := arrange(descs)
	s.logger.Debug("scanned mods directory", "dir", dir, "archives", len(jars), "mods", len(records), "took", time.Since(start))
	return records, nil
}

// dedupe keeps one descriptor per id. Both parseable as semver: keep the
// higher version; otherwise compare version strings.
func (s *Scanner) dedupe(perJar [][]*descriptor) map[string]*descriptor {
	best := make(map[string]*descriptor)
	bestVersion := make(map[string]*semver.Version)

	for _, descs := range perJar {
		for _, d := range descs {
			id := d.record.ID
			sv, svErr := semver.NewVersion(d.record.Version)

			existing, seen := best[id]
			if !seen {
				best[id] = d
				if svErr == nil {
					bestVersion[id] = sv
				}
				continue
			}

			s.logger.Warn("duplicate mod id", "id", id,
				"kept", existing.record.Source, "other", d.record.Source)

			if prev, ok := bestVersion[id]; ok && svErr == nil {
				if sv.GreaterThan(prev) {
					best[id] = d
					bestVersion[id] = sv
				}
				continue
			}

			if d.record.Version > existing.record.Version {
				best[id] = d
				delete(bestVersion, id)
				if svErr == nil {
					bestVersion[id] = sv
				}
			}
		}
	}
	return best
}

// listJars returns the names of the .jar files directly inside dir, sorted.
func listJars(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var jars []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jar") {
			continue
		}
		jars = append(jars, e.Name())
	}
	sort.Strings(jars)
	return jars, nil
}
