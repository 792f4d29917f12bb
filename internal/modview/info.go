// ABOUTME: Renders the detail view of a single mod for `info`
// ABOUTME: Shows labelled fields, contact links, a child preview and an optional child tree
package modview

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/ui"
)

// childPreview is how many children the info view lists before summarising.
const childPreview = 5

var urlPattern = regexp.MustCompile(`(?:(https?)://)?([-\w_.]+\.\w{2,})(/\S*)?`)

// InfoOptions configures the info view.
type InfoOptions struct {
	Tree bool // print the full child tree
}

// RenderInfo outputs the record of a GetByID result, or the not-found message
// when the result is empty.
func (f *Formatter) RenderInfo(s *catalog.Snapshot, r catalog.PageResult, opts InfoOptions) error {
	if len(r.Items) == 0 {
		if f.opts.Format == FormatJSON {
			return f.encode(struct {
				ID    string `json:"id"`
				Found bool   `json:"found"`
			}{ID: r.Query})
		}
		fmt.Fprintf(f.w, "%s %s\n", ui.Warning(ui.SymbolWarning), NotFoundMessage(r.Query))
		return nil
	}

	rec := r.Items[0].Record
	if f.opts.Format == FormatJSON {
		return f.encode(newJSONRecord(s, rec))
	}

	fmt.Fprintln(f.w, ui.RenderHeader(rec.DisplayName()))
	fmt.Fprintln(f.w)

	f.detail("Mod ID", rec.ID)
	f.detail("Version", rec.Version)
	f.detail("Type", rec.Type)
	if rec.Environment != "" && rec.Environment != catalog.EnvUniversal {
		f.detail("Environment", rec.Environment.Describe())
	}
	if parent, ok := s.Lookup(rec.Parent); ok {
		f.detail("Parent", fmt.Sprintf("%s (%s)", parent.DisplayName(), parent.ID))
	}
	f.line(ui.RenderDetailList("Author", "Authors", rec.Authors))
	f.line(ui.RenderDetailList("Contributor", "Contributors", rec.Contributors))
	f.line(ui.RenderDetailList("License", "Licenses", rec.Licenses))
	f.line(ui.RenderDetailList("Provides", "Provides", rec.Provides))

	if desc := strings.TrimSpace(rec.Description); desc != "" {
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, ui.RenderSection("Description", -1))
		fmt.Fprintln(f.w, ui.RenderMarkdown(desc, f.opts.Raw))
	}

	if len(rec.Contact) > 0 {
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, ui.RenderSection("Contact", -1))
		for _, c := range rec.Contact {
			fmt.Fprintf(f.w, "  %s\n", ui.RenderDetail(c.Key, Linkify(c.Value)))
		}
	}

	children := s.Children(rec.ID)
	if len(children) > 0 {
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, ui.RenderSection("Child mods", len(children)))
		if opts.Tree {
			tree, count := GenerateTree(s, rec.ID)
			fmt.Fprint(f.w, tree)
			fmt.Fprintln(f.w, ui.Muted(fmt.Sprintf("%d mods in tree", count)))
		} else {
			fmt.Fprintf(f.w, "  %s\n", childSummary(children))
			if f.opts.ChildrenCommand != nil {
				fmt.Fprintf(f.w, "  %s %s\n", ui.Muted(ui.SymbolArrow), ui.Info(f.opts.ChildrenCommand(rec.ID)))
			}
		}
	}
	return nil
}

func (f *Formatter) detail(label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintln(f.w, ui.RenderDetail(label, value))
}

func (f *Formatter) line(s string) {
	if s == "" {
		return
	}
	fmt.Fprintln(f.w, s)
}

// childSummary lists the first children by name followed by ", and N more...".
func childSummary(children []*catalog.ComponentRecord) string {
	n := min(len(children), childPreview)
	names := make([]string, n)
	for i, c := range children[:n] {
		names[i] = ui.Name(c.DisplayName())
	}
	out := strings.Join(names, ", ")
	if rest := len(children) - n; rest > 0 {
		out += fmt.Sprintf(", and %d more...", rest)
	}
	return out
}

// Linkify styles every URL-like token in s as a link. Bare hosts get an
// https:// scheme.
func Linkify(s string) string {
	return urlPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := urlPattern.FindStringSubmatch(m)
		if parts[1] == "" {
			m = "https://" + m
		}
		return ui.Link(m)
	})
}

type jsonContact struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type jsonRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Version      string        `json:"version,omitempty"`
	Type         string        `json:"type,omitempty"`
	Description  string        `json:"description,omitempty"`
	Environment  string        `json:"environment,omitempty"`
	Authors      []string      `json:"authors,omitempty"`
	Contributors []string      `json:"contributors,omitempty"`
	Licenses     []string      `json:"licenses,omitempty"`
	Contact      []jsonContact `json:"contact,omitempty"`
	Parent       string        `json:"parent,omitempty"`
	Children     []string      `json:"children,omitempty"`
	Provides     []string      `json:"provides,omitempty"`
	Dependencies []string      `json:"dependencies,omitempty"`
	Source       string        `json:"source,omitempty"`
}

func newJSONRecord(s *catalog.Snapshot, rec *catalog.ComponentRecord) jsonRecord {
	out := jsonRecord{
		ID:           rec.ID,
		Name:         rec.DisplayName(),
		Version:      rec.Version,
		Type:         rec.Type,
		Description:  rec.Description,
		Environment:  string(rec.Environment),
		Authors:      rec.Authors,
		Contributors: rec.Contributors,
		Licenses:     rec.Licenses,
		Parent:       rec.Parent,
		Provides:     rec.Provides,
		Dependencies: rec.Dependencies,
		Source:       rec.Source,
	}
	for _, c := range rec.Contact {
		out.Contact = append(out.Contact, jsonContact{Key: c.Key, Value: c.Value})
	}
	for _, c := range s.Children(rec.ID) {
		out.Children = append(out.Children, c.ID)
	}
	return out
}
