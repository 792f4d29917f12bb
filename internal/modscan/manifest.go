// ABOUTME: Parses loader manifests (fabric.mod.json, quilt.mod.json, META-INF/mods.toml)
// ABOUTME: Converts each manifest into descriptors carrying arrangement hints

package modscan

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/unicode/norm"
)

// Custom value keys that drive parent/child arrangement.
const (
	markerFabricAPIModule = "fabric-api:module-lifecycle"
	markerLoomGenerated   = "fabric-loom:generated"
)

// descriptor is a record read from a manifest plus the hints that the
// arrangement pass needs and the snapshot does not keep.
type descriptor struct {
	record        catalog.ComponentRecord
	modMenuParent string
	markers       map[string]bool
	nestedJars    []string
}

func (d *descriptor) hasMarker(key string) bool {
	return d.markers[key]
}

// stringList accepts either a JSON string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// people accepts Fabric person entries: plain names or {"name": ...} objects.
type people []string

func (p *people) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var name string
		if err := json.Unmarshal(r, &name); err == nil {
			out = append(out, name)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return err
		}
		if obj.Name != "" {
			out = append(out, obj.Name)
		}
	}
	*p = out
	return nil
}

type jarEntry struct {
	File string `json:"file"`
}

// fabricManifest represents the structure of fabric.mod.json
type fabricManifest struct {
	ID           string                     `json:"id"`
	Version      string                     `json:"version"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	Authors      people                     `json:"authors"`
	Contributors people                     `json:"contributors"`
	Contact      map[string]string          `json:"contact"`
	License      stringList                 `json:"license"`
	Environment  string                     `json:"environment"`
	Provides     []string                   `json:"provides"`
	Depends      map[string]json.RawMessage `json:"depends"`
	Jars         []jarEntry                 `json:"jars"`
	Custom       map[string]json.RawMessage `json:"custom"`
}

func parseFabric(data []byte) (*descriptor, error) {
	var m fabricManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse fabric.mod.json: %w", err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("fabric.mod.json has no id")
	}

	d := &descriptor{
		record: catalog.ComponentRecord{
			ID:           m.ID,
			Name:         m.Name,
			Version:      m.Version,
			Description:  m.Description,
			Type:         "fabric",
			Authors:      m.Authors,
			Contributors: m.Contributors,
			Licenses:     m.License,
			Contact:      contactEntries(m.Contact),
			Environment:  catalog.ParseEnvironment(m.Environment),
			Provides:     m.Provides,
			Dependencies: sortedKeys(m.Depends),
		},
		markers: make(map[string]bool),
	}
	for key := range m.Custom {
		d.markers[key] = true
	}
	if raw, ok := m.Custom["modmenu"]; ok {
		d.modMenuParent = modMenuParent(raw)
	}
	for _, j := range m.Jars {
		if j.File != "" {
			d.nestedJars = append(d.nestedJars, j.File)
		}
	}
	return d, nil
}

// modMenuParent extracts custom.modmenu.parent, which is either an id string
// or an object with an "id" field.
func modMenuParent(raw json.RawMessage) string {
	var mm struct {
		Parent json.RawMessage `json:"parent"`
	}
	if err := json.Unmarshal(raw, &mm); err != nil || len(mm.Parent) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(mm.Parent, &id); err == nil {
		return id
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(mm.Parent, &obj); err == nil {
		return obj.ID
	}
	return ""
}

// quiltManifest represents the parts of quilt.mod.json that are displayed
type quiltManifest struct {
	QuiltLoader struct {
		ID       string `json:"id"`
		Version  string `json:"version"`
		Metadata struct {
			Name         string            `json:"name"`
			Description  string            `json:"description"`
			Contributors map[string]any    `json:"contributors"`
			Contact      map[string]string `json:"contact"`
			License      json.RawMessage   `json:"license"`
		} `json:"metadata"`
		Provides []json.RawMessage `json:"provides"`
		Depends  []json.RawMessage `json:"depends"`
		Jars     []string          `json:"jars"`
	} `json:"quilt_loader"`
	Environment string          `json:"minecraft_environment"`
	ModMenu     json.RawMessage `json:"modmenu"`
}

func parseQuilt(data []byte) (*descriptor, error) {
	var m quiltManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse quilt.mod.json: %w", err)
	}
	ql := m.QuiltLoader
	if ql.ID == "" {
		return nil, fmt.Errorf("quilt.mod.json has no id")
	}

	// Quilt keeps custom values at the top level of the manifest.
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse quilt.mod.json: %w", err)
	}

	// Contributors map names to roles; owners are shown as authors.
	var authors, contributors []string
	for _, name := range sortedKeys(ql.Metadata.Contributors) {
		role, _ := ql.Metadata.Contributors[name].(string)
		if strings.EqualFold(role, "owner") {
			authors = append(authors, name)
		} else {
			contributors = append(contributors, name)
		}
	}

	d := &descriptor{
		record: catalog.ComponentRecord{
			ID:           ql.ID,
			Name:         ql.Metadata.Name,
			Version:      ql.Version,
			Description:  ql.Metadata.Description,
			Type:         "quilt",
			Authors:      authors,
			Contributors: contributors,
			Licenses:     quiltLicenses(ql.Metadata.License),
			Contact:      contactEntries(ql.Metadata.Contact),
			Environment:  catalog.ParseEnvironment(m.Environment),
			Provides:     quiltIDs(ql.Provides),
			Dependencies: quiltIDs(ql.Depends),
		},
		markers:    make(map[string]bool),
		nestedJars: slices.Clone(ql.Jars),
	}
	for key := range top {
		if key != "schema_version" && key != "quilt_loader" {
			d.markers[key] = true
		}
	}
	if len(m.ModMenu) > 0 {
		d.modMenuParent = modMenuParent(m.ModMenu)
	}
	return d, nil
}

// quiltLicenses accepts a license id, an object with an "id", or an array of either.
func quiltLicenses(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		items = []json.RawMessage{raw}
	}
	var out []string
	for _, item := range items {
		if id := quiltID(item); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func quiltIDs(raw []json.RawMessage) []string {
	var out []string
	for _, item := range raw {
		if id := quiltID(item); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func quiltID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}

// forgeManifest represents META-INF/mods.toml
type forgeManifest struct {
	License         string `toml:"license"`
	IssueTrackerURL string `toml:"issueTrackerURL"`
	Mods            []struct {
		ModID       string `toml:"modId"`
		Version     string `toml:"version"`
		DisplayName string `toml:"displayName"`
		Description string `toml:"description"`
		Authors     string `toml:"authors"`
		Credits     string `toml:"credits"`
		DisplayURL  string `toml:"displayURL"`
	} `toml:"mods"`
	Dependencies map[string][]struct {
		ModID string `toml:"modId"`
	} `toml:"dependencies"`
}

// parseForge returns one descriptor per [[mods]] entry. jarVersion replaces
// the ${file.jarVersion} placeholder.
func parseForge(data []byte, jarVersion string) ([]*descriptor, error) {
	var m forgeManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse mods.toml: %w", err)
	}

	var out []*descriptor
	for _, mod := range m.Mods {
		if mod.ModID == "" {
			continue
		}
		version := mod.Version
		if strings.HasPrefix(version, "${") {
			version = jarVersion
		}
		var contact []catalog.ContactEntry
		if mod.DisplayURL != "" {
			contact = append(contact, catalog.ContactEntry{Key: "homepage", Value: mod.DisplayURL})
		}
		if m.IssueTrackerURL != "" {
			contact = append(contact, catalog.ContactEntry{Key: "issues", Value: m.IssueTrackerURL})
		}
		var licenses []string
		if m.License != "" {
			licenses = []string{m.License}
		}
		var deps []string
		for _, dep := range m.Dependencies[mod.ModID] {
			deps = append(deps, dep.ModID)
		}
		out = append(out, &descriptor{
			record: catalog.ComponentRecord{
				ID:           mod.ModID,
				Name:         mod.DisplayName,
				Version:      version,
				Description:  strings.TrimSpace(mod.Description),
				Type:         "forge",
				Authors:      splitNames(mod.Authors),
				Contributors: splitNames(mod.Credits),
				Licenses:     licenses,
				Contact:      contact,
				Environment:  catalog.EnvUniversal,
				Dependencies: deps,
			},
			markers: map[string]bool{},
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("mods.toml declares no mods")
	}
	return out, nil
}

// manifestVersion reads Implementation-Version from META-INF/MANIFEST.MF.
func manifestVersion(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if ok && strings.TrimSpace(key) == "Implementation-Version" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func splitNames(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// contactOrder lists well-known contact keys in display order. Other keys
// follow alphabetically.
var contactOrder = []string{"homepage", "sources", "issues", "email", "irc", "discord"}

func contactEntries(m map[string]string) []catalog.ContactEntry {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	rank := func(k string) int {
		if i := slices.Index(contactOrder, k); i >= 0 {
			return i
		}
		return len(contactOrder)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	out := make([]catalog.ContactEntry, 0, len(keys))
	for _, k := range keys {
		if m[k] != "" {
			out = append(out, catalog.ContactEntry{Key: k, Value: m[k]})
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalize puts display text into NFC so composed and decomposed input
// match the same queries.
func (d *descriptor) normalize() {
	r := &d.record
	r.Name = norm.NFC.String(strings.TrimSpace(r.Name))
	r.Description = norm.NFC.String(strings.TrimSpace(r.Description))
	for i := range r.Authors {
		r.Authors[i] = norm.NFC.String(r.Authors[i])
	}
	for i := range r.Contributors {
		r.Contributors[i] = norm.NFC.String(r.Contributors[i])
	}
}
