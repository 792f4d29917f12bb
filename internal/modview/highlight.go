// ABOUTME: Emphasises the matched byte spans of a field for display
// ABOUTME: Also cuts long descriptions down to the region around the first match
package modview

import (
	"strings"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/ui"
)

// excerptContext is how many bytes around the first span an excerpt keeps.
const excerptContext = 40

// Highlight renders text with spans emphasised. rest styles the unmatched
// segments; nil leaves them unstyled. Spans outside text are ignored.
func Highlight(text string, spans []catalog.Span, rest func(string) string) string {
	if rest == nil {
		rest = func(s string) string { return s }
	}

	var sb strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.Start < pos || sp.End > len(text) || sp.Start >= sp.End {
			continue
		}
		if sp.Start > pos {
			sb.WriteString(rest(text[pos:sp.Start]))
		}
		sb.WriteString(ui.Highlight(text[sp.Start:sp.End]))
		pos = sp.End
	}
	if pos < len(text) {
		sb.WriteString(rest(text[pos:]))
	}
	return sb.String()
}

var flatten = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

// excerpt returns the part of a description around its spans on one line,
// highlighted, with "..." where it was cut.
func excerpt(text string, spans []catalog.Span) string {
	text = flatten.Replace(text)
	if len(spans) == 0 || len(text) <= 2*excerptContext {
		return Highlight(text, spans, ui.Muted)
	}

	start := max(spans[0].Start-excerptContext, 0)
	end := min(spans[len(spans)-1].End+excerptContext, len(text))
	start = runeStart(text, start)
	end = runeStart(text, end)

	shifted := make([]catalog.Span, 0, len(spans))
	for _, sp := range spans {
		if sp.Start >= start && sp.End <= end {
			shifted = append(shifted, catalog.Span{Start: sp.Start - start, End: sp.End - start})
		}
	}

	out := Highlight(text[start:end], shifted, ui.Muted)
	if start > 0 {
		out = ui.Muted("...") + out
	}
	if end < len(text) {
		out += ui.Muted("...")
	}
	return out
}

// runeStart moves i back to the start of the UTF-8 sequence containing it.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && s[i]&0xC0 == 0x80 {
		i--
	}
	return i
}
