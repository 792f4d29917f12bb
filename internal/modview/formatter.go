// ABOUTME: Renders query engine pages to terminal output
// ABOUTME: Supports default, table and JSON formats with page navigation hints

package modview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/ui"
)

// Output formats.
const (
	FormatDefault = "default"
	FormatTable   = "table"
	FormatJSON    = "json"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatDefault, FormatTable, FormatJSON}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Options configures output rendering.
type Options struct {
	Format string // "default", "table", "json"

	// PageCommand returns the command that shows the given page of the same
	// listing. Nil disables navigation hints.
	PageCommand func(page int) string

	// ChildrenCommand returns the command listing the children of a mod.
	// Nil hides the hint in the info view.
	ChildrenCommand func(id string) string

	// Raw disables markdown rendering of descriptions.
	Raw bool
}

// Formatter renders engine results to an io.Writer.
type Formatter struct {
	w    io.Writer
	opts Options
}

// NewFormatter creates a new Formatter that writes to w.
func NewFormatter(w io.Writer, opts Options) *Formatter {
	if opts.Format == "" {
		opts.Format = FormatDefault
	}
	return &Formatter{w: w, opts: opts}
}

// RenderPage outputs a list, search or children page. display is the query
// text as the user typed it.
func (f *Formatter) RenderPage(s *catalog.Snapshot, r catalog.PageResult, display string) error {
	if display == "" {
		display = r.Query
	}
	switch f.opts.Format {
	case FormatJSON:
		return f.renderJSON(r, display)
	case FormatTable:
		if f.renderEmpty(s, r, display) {
			return nil
		}
		f.renderHeader(s, r, display)
		f.renderTable(r)
		f.renderFooter(r)
	default:
		if f.renderEmpty(s, r, display) {
			return nil
		}
		f.renderHeader(s, r, display)
		for _, hit := range r.Items {
			f.renderHit(s, hit)
		}
		f.renderFooter(r)
	}
	return nil
}

// renderEmpty prints the out-of-range and no-results messages. It reports
// whether anything was printed.
func (f *Formatter) renderEmpty(s *catalog.Snapshot, r catalog.PageResult, display string) bool {
	if r.OutOfRange() {
		fmt.Fprintf(f.w, "%s %s\n", ui.Warning(ui.SymbolWarning), OutOfRangeMessage(r.PageIndex, r.PageCount))
		return true
	}
	if r.TotalMatches > 0 {
		return false
	}

	switch r.Kind {
	case catalog.SearchText:
		fmt.Fprintf(f.w, "%s %s\n\n", ui.Warning(ui.SymbolWarning), NoResultsMessage(display))
		fmt.Fprintln(f.w, ui.Muted("Try:"))
		fmt.Fprintln(f.w, ui.Muted("  - Fewer or shorter search terms"))
		fmt.Fprintln(f.w, ui.Muted("  - Searching by mod id or author"))
	case catalog.ListChildren:
		parent, ok := s.Lookup(r.Query)
		if !ok {
			fmt.Fprintf(f.w, "%s %s\n", ui.Warning(ui.SymbolWarning), NotFoundMessage(r.Query))
			return true
		}
		fmt.Fprintf(f.w, "%s %s has no child mods.\n", ui.Muted(ui.SymbolInfo), parent.DisplayName())
	default:
		fmt.Fprintf(f.w, "%s %s\n", ui.Muted(ui.SymbolInfo), "No mods are loaded.")
	}
	return true
}

func (f *Formatter) renderHeader(s *catalog.Snapshot, r catalog.PageResult, display string) {
	switch r.Kind {
	case catalog.SearchText:
		if display == "" {
			fmt.Fprintln(f.w, ui.RenderSection(fmt.Sprintf("%d results", r.TotalMatches), -1))
			break
		}
		fmt.Fprintln(f.w, ui.RenderSection(fmt.Sprintf("%d results for query: %s", r.TotalMatches, display), -1))
	case catalog.ListChildren:
		name := r.Query
		if parent, ok := s.Lookup(r.Query); ok {
			name = parent.DisplayName()
		}
		fmt.Fprintln(f.w, ui.RenderSection(name+" child mods", r.TotalMatches))
	default:
		fmt.Fprintln(f.w, ui.RenderSection(
			fmt.Sprintf("Loaded Mods (%d total, %d top-level)", s.Len(), s.TopLevelLen()), -1))
	}
}

// renderHit outputs "- Name (id) vVersion (k child mods)" with matched
// characters emphasised.
func (f *Formatter) renderHit(s *catalog.Snapshot, hit catalog.Hit) {
	rec := hit.Record

	name := ui.Name(rec.DisplayName())
	id := ui.Muted(rec.ID)
	switch hit.Field {
	case catalog.FieldName:
		name = Highlight(rec.Name, hit.Spans, ui.Name)
	case catalog.FieldID:
		id = Highlight(rec.ID, hit.Spans, ui.Muted)
	}

	line := fmt.Sprintf(" - %s (%s)", name, id)
	if rec.Version != "" {
		line += " " + ui.Version("v"+rec.Version)
	}
	if n := len(s.Children(rec.ID)); n > 0 {
		line += " " + ui.Muted(pluralize(n, "child mod", "child mods"))
	}
	fmt.Fprintln(f.w, line)

	switch hit.Field {
	case catalog.FieldDescription:
		fmt.Fprintf(f.w, "   %s %s\n", ui.Muted(ui.SymbolArrow), excerpt(rec.Description, hit.Spans))
	case catalog.FieldAuthor:
		if hit.FieldIndex < len(rec.Authors) {
			author := rec.Authors[hit.FieldIndex]
			fmt.Fprintf(f.w, "   %s by %s\n", ui.Muted(ui.SymbolArrow), Highlight(author, hit.Spans, nil))
		}
	}
}

func (f *Formatter) renderTable(r catalog.PageResult) {
	scored := r.Kind == catalog.SearchText && r.Query != ""

	header := fmt.Sprintf("%-28s %-28s %-14s %s", "ID", "NAME", "VERSION", "CHILDREN")
	if scored {
		header += "  SCORE"
	}
	fmt.Fprintln(f.w, ui.Bold(header))
	fmt.Fprintln(f.w, ui.Muted(strings.Repeat("─", 82)))

	for _, hit := range r.Items {
		rec := hit.Record
		row := fmt.Sprintf("%s %s %s %8d",
			ui.Bold(ui.PadRight(ui.Truncate(rec.ID, 28), 28)),
			ui.PadRight(ui.Truncate(rec.DisplayName(), 28), 28),
			ui.Muted(ui.PadRight(ui.Truncate(rec.Version, 14), 14)),
			len(rec.Children))
		if scored {
			row += fmt.Sprintf("  %5d", hit.Score)
		}
		fmt.Fprintln(f.w, row)
	}
}

// renderFooter outputs "Page x/y" with previous/next hints. Single pages
// have no footer.
func (f *Formatter) renderFooter(r catalog.PageResult) {
	if r.PageCount <= 1 {
		return
	}

	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, ui.Muted(fmt.Sprintf("Page %d/%d", r.PageIndex, r.PageCount)))
	if f.opts.PageCommand == nil {
		return
	}
	if r.PageIndex > 1 {
		fmt.Fprintf(f.w, "  %s %s\n", ui.Muted("←"), ui.Info(f.opts.PageCommand(r.PageIndex-1)))
	}
	if r.PageIndex < r.PageCount {
		fmt.Fprintf(f.w, "  %s %s\n", ui.Muted(ui.SymbolArrow), ui.Info(f.opts.PageCommand(r.PageIndex+1)))
	}
}

// jsonSpan is a matched range of the item's field, in characters (runes)
// rather than bytes.
type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonItem struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Version  string     `json:"version,omitempty"`
	Parent   string     `json:"parent,omitempty"`
	Children int        `json:"children"`
	Score    *int       `json:"score,omitempty"`
	Field    string     `json:"field,omitempty"`
	Spans    []jsonSpan `json:"spans,omitempty"`
}

type jsonPage struct {
	Kind         string     `json:"kind"`
	Query        string     `json:"query,omitempty"`
	PageIndex    int        `json:"pageIndex"`
	PageCount    int        `json:"pageCount"`
	PageSize     int        `json:"pageSize"`
	TotalMatches int        `json:"totalMatches"`
	Items        []jsonItem `json:"items"`
}

func (f *Formatter) renderJSON(r catalog.PageResult, display string) error {
	output := jsonPage{
		Kind:         r.Kind.String(),
		Query:        display,
		PageIndex:    r.PageIndex,
		PageCount:    r.PageCount,
		PageSize:     r.PageSize,
		TotalMatches: r.TotalMatches,
		Items:        make([]jsonItem, 0, len(r.Items)),
	}

	for _, hit := range r.Items {
		item := jsonItem{
			ID:       hit.Record.ID,
			Name:     hit.Record.DisplayName(),
			Version:  hit.Record.Version,
			Parent:   hit.Record.Parent,
			Children: len(hit.Record.Children),
			Field:    string(hit.Field),
		}
		if hit.Field != "" {
			score := hit.Score
			item.Score = &score
		}
		text := fieldText(hit)
		for _, sp := range hit.Spans {
			item.Spans = append(item.Spans, jsonSpan{
				Start: utf8.RuneCountInString(text[:sp.Start]),
				End:   utf8.RuneCountInString(text[:sp.End]),
			})
		}
		output.Items = append(output.Items, item)
	}

	return f.encode(output)
}

// fieldText returns the text a hit's spans index into.
func fieldText(hit catalog.Hit) string {
	rec := hit.Record
	switch hit.Field {
	case catalog.FieldName:
		return rec.Name
	case catalog.FieldID:
		return rec.ID
	case catalog.FieldDescription:
		return rec.Description
	case catalog.FieldAuthor:
		if hit.FieldIndex < len(rec.Authors) {
			return rec.Authors[hit.FieldIndex]
		}
	}
	return ""
}

func (f *Formatter) encode(v any) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// OutOfRangeMessage is printed for a page past the last one.
func OutOfRangeMessage(page, pages int) string {
	return fmt.Sprintf("Page %d is out of range! There are only %d pages of results.", page, pages)
}

// NoResultsMessage is printed for a search without matches.
func NoResultsMessage(query string) string {
	return fmt.Sprintf("No results for query '%s'.", query)
}

// NotFoundMessage is printed when a mod id does not exist.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("No mod with id '%s'", id)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, singular)
	}
	return fmt.Sprintf("(%d %s)", n, plural)
}
