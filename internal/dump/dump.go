// ABOUTME: YAML dump of the installed mod tree plus host environment details
// ABOUTME: Written to installed-mods.yml next to the mods directory for bug reports
package dump

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/modscmd/modscmd/internal/catalog"
)

// FileName is the default dump file name.
const FileName = "installed-mods.yml"

// Info describes the environment the dump is taken in.
type Info struct {
	Version string // modscmd version
	ModsDir string
	Args    []string
}

// Report is the document written to the dump file.
type Report struct {
	GeneratedBy     string          `yaml:"generated-by"`
	ModsDirectory   string          `yaml:"mods-directory"`
	LaunchArguments []string        `yaml:"launch-arguments,omitempty"`
	OperatingSystem OperatingSystem `yaml:"operating-system"`
	Runtime         Runtime         `yaml:"runtime"`
	Mods            []Mod           `yaml:"mods"`
}

// OperatingSystem identifies the host.
type OperatingSystem struct {
	Name string `yaml:"name"`
	Arch string `yaml:"arch"`
}

// Runtime identifies the Go runtime that produced the dump.
type Runtime struct {
	Version  string `yaml:"version"`
	Compiler string `yaml:"compiler"`
	CPUs     int    `yaml:"cpus"`
}

// Mod is one entry of the mods tree.
type Mod struct {
	ID          string `yaml:"mod-id"`
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment,omitempty"`
	Authors     string `yaml:"authors,omitempty"`
	Children    []Mod  `yaml:"children,omitempty"`
}

// Build assembles the report for s. Top-level mods appear in snapshot order
// with their children nested below them.
func Build(s *catalog.Snapshot, info Info) Report {
	version := info.Version
	if version == "" {
		version = "dev"
	}

	r := Report{
		GeneratedBy:     "modscmd " + version,
		ModsDirectory:   info.ModsDir,
		LaunchArguments: info.Args,
		OperatingSystem: OperatingSystem{Name: runtime.GOOS, Arch: runtime.GOARCH},
		Runtime: Runtime{
			Version:  runtime.Version(),
			Compiler: runtime.Compiler,
			CPUs:     runtime.NumCPU(),
		},
		Mods: []Mod{},
	}

	seen := make(map[string]bool)
	for _, rec := range s.TopLevel() {
		r.Mods = append(r.Mods, buildMod(s, rec, seen))
	}
	return r
}

func buildMod(s *catalog.Snapshot, rec *catalog.ComponentRecord, seen map[string]bool) Mod {
	seen[rec.ID] = true
	m := Mod{
		ID:      rec.ID,
		Name:    rec.DisplayName(),
		Version: rec.Version,
		Authors: strings.Join(rec.Authors, ", "),
	}
	if rec.Environment != "" && rec.Environment != catalog.EnvUniversal {
		m.Environment = string(rec.Environment)
	}
	for _, child := range s.Children(rec.ID) {
		if seen[child.ID] {
			continue
		}
		m.Children = append(m.Children, buildMod(s, child, seen))
	}
	return m
}

// Encode writes r as block-style YAML.
func Encode(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding dump: %w", err)
	}
	return enc.Close()
}

// DefaultPath returns the dump location for a mods directory: the directory
// that contains it, like a game directory contains its mods folder.
func DefaultPath(modsDir string) string {
	abs, err := filepath.Abs(modsDir)
	if err != nil {
		abs = modsDir
	}
	return filepath.Join(filepath.Dir(abs), FileName)
}

// Write encodes the report for s to path, creating parent directories.
// It returns the written document.
func Write(path string, s *catalog.Snapshot, info Info) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, Build(s, info)); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating dump directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing dump to %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
