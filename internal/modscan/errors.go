// ABOUTME: Error types for mods directory scanning
// ABOUTME: Provides structured errors with actionable user guidance
package modscan

import "fmt"

// ModsDirNotFoundError indicates the configured mods directory does not exist
type ModsDirNotFoundError struct {
	Path   string // Directory that was scanned
	Source string // Where the path came from, e.g. "--mods-dir", "config", "default"
}

func (e *ModsDirNotFoundError) Error() string {
	return fmt.Sprintf(`Mods directory not found:

  Path: %s
  Configured by: %s

Possible causes:
  1. The game instance has not been started yet
  2. The mods directory lives somewhere else

To fix, point modscmd at the right directory:
  modscmd --mods-dir /path/to/.minecraft/mods list

or set mods_dir in the config file (see: modscmd config show)`,
		e.Path, e.Source)
}

// ArchiveError describes a jar that could not be read. Scan logs these and
// skips the archive.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("read mod archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}
