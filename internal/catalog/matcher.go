// ABOUTME: Fuzzy subsequence matcher that scores records against a query
// ABOUTME: Rewards word starts and contiguous runs, penalises gaps, reports spans

package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field names the record field a match was found in.
type Field string

const (
	FieldName        Field = "name"
	FieldID          Field = "id"
	FieldDescription Field = "description"
	FieldAuthor      Field = "author"
)

const (
	// ExactNameScore is given to a record whose name equals the query
	// (case-insensitive). No fuzzy score can reach it.
	ExactNameScore = 1 << 30

	// ExactIDScore is given to a record whose id equals the query. It ranks
	// below an exact name match so that name matches always come first.
	ExactIDScore = ExactNameScore - 1
)

// Span is a half-open [Start, End) byte range in the matched field's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Match is the outcome of scoring one record.
type Match struct {
	Score int
	Field Field
	// FieldIndex identifies the author when Field is FieldAuthor.
	FieldIndex int
	Spans      []Span
}

// Weights multiplies the per-field fuzzy score.
type Weights struct {
	Name        int
	ID          int
	Description int
	Author      int
}

// DefaultWeights gives names and ids twice the relevance of free text.
var DefaultWeights = Weights{Name: 2, ID: 2, Description: 1, Author: 1}

// Matcher scores records against query strings. It holds no mutable state
// and is safe for concurrent use.
type Matcher struct {
	weights Weights
}

// NewMatcher creates a Matcher using DefaultWeights.
func NewMatcher() *Matcher {
	return NewMatcherWithWeights(DefaultWeights)
}

// NewMatcherWithWeights creates a Matcher with custom field weights.
func NewMatcherWithWeights(w Weights) *Matcher {
	return &Matcher{weights: w}
}

// Score returns the best match of query against rec, or false when no field
// contains the query as a subsequence.
func (m *Matcher) Score(rec *ComponentRecord, query string) (Match, bool) {
	if query == "" || rec == nil {
		return Match{}, false
	}

	if rec.Name != "" && strings.EqualFold(rec.Name, query) {
		return Match{Score: ExactNameScore, Field: FieldName, Spans: []Span{{0, len(rec.Name)}}}, true
	}
	if strings.EqualFold(rec.ID, query) {
		return Match{Score: ExactIDScore, Field: FieldID, Spans: []Span{{0, len(rec.ID)}}}, true
	}

	q := foldRunes(query)
	var best Match
	found := false

	consider := func(field Field, index int, text string, weight int) {
		if weight <= 0 || text == "" {
			return
		}
		score, spans, ok := scoreField(text, q)
		if !ok {
			return
		}
		score *= weight
		if !found || score > best.Score {
			best = Match{Score: score, Field: field, FieldIndex: index, Spans: spans}
			found = true
		}
	}

	consider(FieldName, 0, rec.Name, m.weights.Name)
	consider(FieldID, 0, rec.ID, m.weights.ID)
	consider(FieldDescription, 0, rec.Description, m.weights.Description)
	for i, author := range rec.Authors {
		consider(FieldAuthor, i, author, m.weights.Author)
	}

	return best, found
}

// ScoreText scores a single piece of text against query without weighting.
func ScoreText(text, query string) (int, []Span, bool) {
	if query == "" {
		return 0, nil, false
	}
	return scoreField(text, foldRunes(query))
}

const unreachable = -1 << 31

// scoreField finds the highest scoring alignment of q inside text.
//
// For positions p0 < p1 < ... the score is
//
//	len(q) + word starts + runs of >= 2 adjacent positions - gap characters
//
// floored at zero. Any in-order alignment is a match, even one that floors
// to zero; only a query that is not a subsequence of text is no match.
func scoreField(text string, q []rune) (int, []Span, bool) {
	m := len(q)
	if m == 0 {
		return 0, nil, false
	}

	runes, offsets := decode(text)
	n := len(runes)
	if m > n || !isSubsequence(runes, q) {
		return 0, nil, false
	}

	start := make([]bool, n)
	for j := range runes {
		start[j] = j == 0 || isBoundary(runes[j-1])
	}

	// best[i][c][j]: best score with q[i] placed at j; c is 1 when q[i]
	// directly follows q[i-1].
	type step struct{ prev, state int }
	best := make([][2][]int, m)
	back := make([][2][]step, m)
	for i := range best {
		for c := 0; c < 2; c++ {
			best[i][c] = make([]int, n)
			back[i][c] = make([]step, n)
			for j := range best[i][c] {
				best[i][c][j] = unreachable
			}
		}
	}

	for j := 0; j < n; j++ {
		if runes[j] == q[0] {
			best[0][0][j] = 1 + bonus(start[j])
		}
	}

	for i := 1; i < m; i++ {
		runMax, runArg, runState := unreachable, -1, 0
		for j := 1; j < n; j++ {
			// Extend the running maximum with k = j-2 for gapped transitions.
			if k := j - 2; k >= 0 {
				for c := 0; c < 2; c++ {
					if v := best[i-1][c][k]; v != unreachable && v+k > runMax {
						runMax, runArg, runState = v+k, k, c
					}
				}
			}
			if runes[j] != q[i] {
				continue
			}
			gain := 1 + bonus(start[j])

			for c := 0; c < 2; c++ {
				v := best[i-1][c][j-1]
				if v == unreachable {
					continue
				}
				cand := v + gain
				if c == 0 {
					cand++ // a new run of two starts here
				}
				if cand > best[i][1][j] {
					best[i][1][j] = cand
					back[i][1][j] = step{prev: j - 1, state: c}
				}
			}

			if runArg >= 0 {
				cand := runMax - j + 1 + gain
				best[i][0][j] = cand
				back[i][0][j] = step{prev: runArg, state: runState}
			}
		}
	}

	score, endPos, endState := unreachable, -1, 0
	for j := 0; j < n; j++ {
		for c := 0; c < 2; c++ {
			if v := best[m-1][c][j]; v > score {
				score, endPos, endState = v, j, c
			}
		}
	}
	if endPos < 0 {
		return 0, nil, false
	}
	score = max(score, 0)

	positions := make([]int, m)
	j, c := endPos, endState
	for i := m - 1; i >= 0; i-- {
		positions[i] = j
		if i > 0 {
			s := back[i][c][j]
			j, c = s.prev, s.state
		}
	}

	return score, toSpans(positions, runes, offsets), true
}

func bonus(wordStart bool) int {
	if wordStart {
		return 1
	}
	return 0
}

func toSpans(positions []int, runes []rune, offsets []int) []Span {
	var spans []Span
	for _, p := range positions {
		end := offsets[p] + utf8.RuneLen(runes[p])
		if n := len(spans); n > 0 && spans[n-1].End == offsets[p] {
			spans[n-1].End = end
			continue
		}
		spans = append(spans, Span{Start: offsets[p], End: end})
	}
	return spans
}

// decode returns the folded runes of s with their byte offsets in s.
func decode(s string) ([]rune, []int) {
	runes := make([]rune, 0, len(s))
	offsets := make([]int, 0, len(s))
	for i, r := range s {
		runes = append(runes, unicode.ToLower(r))
		offsets = append(offsets, i)
	}
	return runes, offsets
}

func foldRunes(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return out
}

func isSubsequence(text, q []rune) bool {
	i := 0
	for _, r := range text {
		if i < len(q) && r == q[i] {
			i++
		}
	}
	return i == len(q)
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}
