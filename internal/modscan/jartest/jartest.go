// ABOUTME: Builds fake mod jars for tests of the scanner and the CLI
// ABOUTME: Writes fabric, quilt and forge manifests into zip archives, including nested jars

package jartest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Loader selects which manifest a fake jar carries.
type Loader string

const (
	Fabric Loader = "fabric"
	Quilt  Loader = "quilt"
	Forge  Loader = "forge"
)

// Mod describes the manifest of one fake jar.
type Mod struct {
	Loader       Loader
	ID           string
	Name         string
	Version      string
	Description  string
	Authors      []string
	Contributors []string
	License      string
	Environment  string            // "client", "server", "*" or ""
	Contact      map[string]string // homepage, sources, issues, ...
	Custom       map[string]any    // fabric "custom" values, quilt top-level values
	Nested       []Mod             // bundled jar-in-jar mods
}

// Write creates a jar at path for m, creating parent directories.
func Write(path string, m Mod) error {
	data, err := Bytes(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Bytes returns the zip archive for m.
func Bytes(m Mod) ([]byte, error) {
	files := map[string][]byte{}

	var nestedPaths []string
	for _, n := range m.Nested {
		data, err := Bytes(n)
		if err != nil {
			return nil, err
		}
		p := "META-INF/jars/" + n.ID + ".jar"
		files[p] = data
		nestedPaths = append(nestedPaths, p)
	}

	switch m.Loader {
	case Quilt:
		data, err := quiltManifest(m, nestedPaths)
		if err != nil {
			return nil, err
		}
		files["quilt.mod.json"] = data
	case Forge:
		files["META-INF/mods.toml"] = forgeManifest(m)
		files["META-INF/MANIFEST.MF"] = []byte("Manifest-Version: 1.0\nImplementation-Version: " + m.Version + "\n")
	default:
		data, err := fabricManifest(m, nestedPaths)
		if err != nil {
			return nil, err
		}
		files["fabric.mod.json"] = data
	}
	return Zip(files)
}

// Zip returns a zip archive holding files, written in name order.
func Zip(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fabricManifest(m Mod, nested []string) ([]byte, error) {
	doc := map[string]any{
		"schemaVersion": 1,
		"id":            m.ID,
		"version":       m.Version,
	}
	setIf(doc, "name", m.Name)
	setIf(doc, "description", m.Description)
	setIf(doc, "license", m.License)
	setIf(doc, "environment", m.Environment)
	if len(m.Authors) > 0 {
		doc["authors"] = m.Authors
	}
	if len(m.Contributors) > 0 {
		doc["contributors"] = m.Contributors
	}
	if len(m.Contact) > 0 {
		doc["contact"] = m.Contact
	}
	if len(m.Custom) > 0 {
		doc["custom"] = m.Custom
	}
	if len(nested) > 0 {
		jars := make([]map[string]string, len(nested))
		for i, p := range nested {
			jars[i] = map[string]string{"file": p}
		}
		doc["jars"] = jars
	}
	return json.MarshalIndent(doc, "", "  ")
}

func quiltManifest(m Mod, nested []string) ([]byte, error) {
	contributors := map[string]string{}
	for _, a := range m.Authors {
		contributors[a] = "Owner"
	}
	for _, c := range m.Contributors {
		contributors[c] = "Contributor"
	}
	metadata := map[string]any{}
	setIf(metadata, "name", m.Name)
	setIf(metadata, "description", m.Description)
	setIf(metadata, "license", m.License)
	if len(contributors) > 0 {
		metadata["contributors"] = contributors
	}
	if len(m.Contact) > 0 {
		metadata["contact"] = m.Contact
	}

	loader := map[string]any{
		"group":    "org.example",
		"id":       m.ID,
		"version":  m.Version,
		"metadata": metadata,
	}
	if len(nested) > 0 {
		loader["jars"] = nested
	}
	doc := map[string]any{
		"schema_version": 1,
		"quilt_loader":   loader,
	}
	setIf(doc, "minecraft_environment", m.Environment)
	for k, v := range m.Custom {
		doc[k] = v
	}
	return json.MarshalIndent(doc, "", "  ")
}

func forgeManifest(m Mod) []byte {
	var b strings.Builder
	b.WriteString("modLoader=\"javafml\"\nloaderVersion=\"[47,)\"\n")
	if m.License != "" {
		fmt.Fprintf(&b, "license=%q\n", m.License)
	}
	if issues := m.Contact["issues"]; issues != "" {
		fmt.Fprintf(&b, "issueTrackerURL=%q\n", issues)
	}
	b.WriteString("\n[[mods]]\n")
	fmt.Fprintf(&b, "modId=%q\n", m.ID)
	b.WriteString("version=\"${file.jarVersion}\"\n")
	if m.Name != "" {
		fmt.Fprintf(&b, "displayName=%q\n", m.Name)
	}
	if homepage := m.Contact["homepage"]; homepage != "" {
		fmt.Fprintf(&b, "displayURL=%q\n", homepage)
	}
	if len(m.Authors) > 0 {
		fmt.Fprintf(&b, "authors=%q\n", strings.Join(m.Authors, ", "))
	}
	if m.Description != "" {
		fmt.Fprintf(&b, "description='''\n%s\n'''\n", m.Description)
	}
	return []byte(b.String())
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
