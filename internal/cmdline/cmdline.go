// ABOUTME: Parses chat-style command lines ("mods search fabric api 2") into queries
// ABOUTME: Pure functions shared by the interactive shell and the cobra commands

package cmdline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/modscmd/modscmd/internal/catalog"
)

// Kind is what a parsed line asks for.
type Kind int

const (
	KindQuery Kind = iota // run Command.Query against the snapshot
	KindDump              // write the mod dump
	KindHelp              // print usage
)

// Command is the result of parsing one line.
type Command struct {
	Kind  Kind
	Query catalog.Query

	// Display is the search text as typed, used in headers and page hints.
	// It differs from Query.Text when the text selected an environment.
	Display string
}

// UsageError reports a line that does not match any command form.
type UsageError struct {
	Line   string
	Reason string
	Usage  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %q\n\nUsage:\n%s", e.Reason, e.Line, e.Usage)
}

// Parser turns lines into commands. Label is the command word ("mods").
type Parser struct {
	Label    string
	PageSize int
}

// NewParser returns a Parser for the given label and page size.
func NewParser(label string, pageSize int) *Parser {
	return &Parser{Label: label, PageSize: pageSize}
}

// Usage lists the accepted forms.
func (p *Parser) Usage() string {
	l := p.Label
	return strings.Join([]string{
		"  " + l + " [page <n>]",
		"  " + l + " info <id>",
		"  " + l + " info <id> children [<n>]",
		"  " + l + " search <query...> [<n>]",
		"  dump" + l,
		"  help",
	}, "\n")
}

// ParseLine parses one chat-style line. A leading "/" is ignored.
func (p *Parser) ParseLine(line string) (Command, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(fields) == 0 {
		return Command{}, p.usage(line, "empty command")
	}

	switch head := strings.ToLower(fields[0]); head {
	case "help", "?":
		return Command{Kind: KindHelp}, nil
	case "dump" + strings.ToLower(p.Label):
		return Command{Kind: KindDump}, nil
	case strings.ToLower(p.Label):
	default:
		return Command{}, p.usage(line, "unknown command")
	}

	args := fields[1:]
	if len(args) == 0 {
		return p.list(1), nil
	}

	switch strings.ToLower(args[0]) {
	case "page":
		if len(args) != 2 {
			return Command{}, p.usage(line, "expected one page number")
		}
		page, err := ParsePage(args[1])
		if err != nil {
			return Command{}, p.usage(line, err.Error())
		}
		return p.list(page), nil

	case "info":
		if len(args) < 2 {
			return Command{}, p.usage(line, "missing mod id")
		}
		id := args[1]
		rest := args[2:]
		if len(rest) == 0 {
			return p.Info(id), nil
		}
		if strings.ToLower(rest[0]) != "children" || len(rest) > 2 {
			return Command{}, p.usage(line, "unexpected arguments after mod id")
		}
		page := 1
		if len(rest) == 2 {
			var err error
			if page, err = ParsePage(rest[1]); err != nil {
				return Command{}, p.usage(line, err.Error())
			}
		}
		return p.Children(id, page), nil

	case "search":
		if len(args) < 2 {
			return Command{}, p.usage(line, "missing search query")
		}
		terms, page, err := SplitPage(args[1:])
		if err != nil {
			return Command{}, p.usage(line, err.Error())
		}
		return p.Search(strings.Join(terms, " "), page), nil

	default:
		return Command{}, p.usage(line, "unknown subcommand")
	}
}

func (p *Parser) list(page int) Command {
	return Command{Kind: KindQuery, Query: catalog.Query{
		Kind:         catalog.ListAll,
		Page:         page,
		PageSize:     p.PageSize,
		TopLevelOnly: true,
	}}
}

// Info returns the command showing one mod.
func (p *Parser) Info(id string) Command {
	return Command{Kind: KindQuery, Query: catalog.Query{
		Kind:     catalog.GetByID,
		Text:     id,
		Page:     1,
		PageSize: p.PageSize,
	}}
}

// Children returns the command listing the child mods of id.
func (p *Parser) Children(id string, page int) Command {
	return Command{Kind: KindQuery, Query: catalog.Query{
		Kind:     catalog.ListChildren,
		Text:     id,
		Page:     page,
		PageSize: p.PageSize,
	}}
}

// Search returns the command for a text search. The phrases "client sided"
// and "server sided" (and their spellings) select mods by environment
// instead of matching text.
func (p *Parser) Search(text string, page int) Command {
	q := catalog.Query{
		Kind:     catalog.SearchText,
		Text:     text,
		Page:     page,
		PageSize: p.PageSize,
	}
	if env, ok := EnvironmentPhrase(text); ok {
		q.Text = ""
		q.Environment = env
	}
	return Command{Kind: KindQuery, Query: q, Display: text}
}

// PageLine returns the line that shows page of the same listing as cmd.
func (p *Parser) PageLine(cmd Command, page int) string {
	q := cmd.Query
	switch q.Kind {
	case catalog.ListChildren:
		return fmt.Sprintf("%s info %s children %d", p.Label, q.Text, page)
	case catalog.SearchText:
		return fmt.Sprintf("%s search %s %d", p.Label, cmd.Display, page)
	default:
		return fmt.Sprintf("%s page %d", p.Label, page)
	}
}

func (p *Parser) usage(line, reason string) error {
	return &UsageError{Line: line, Reason: reason, Usage: p.Usage()}
}

// SplitPage treats a trailing integer token as the page number when more
// than one token is given. The remaining tokens are the query.
func SplitPage(tokens []string) ([]string, int, error) {
	if len(tokens) < 2 {
		return tokens, 1, nil
	}
	last := tokens[len(tokens)-1]
	if _, err := strconv.Atoi(last); err != nil {
		return tokens, 1, nil
	}
	page, err := ParsePage(last)
	if err != nil {
		return nil, 0, err
	}
	return tokens[:len(tokens)-1], page, nil
}

// ParsePage parses a 1-based page number.
func ParsePage(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("page %q is not a number", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("page must be at least 1, got %d", n)
	}
	return n, nil
}

var environmentPhrases = map[string]catalog.Environment{
	"clientsided":  catalog.EnvClient,
	"client-sided": catalog.EnvClient,
	"client sided": catalog.EnvClient,
	"serversided":  catalog.EnvServer,
	"server-sided": catalog.EnvServer,
	"server sided": catalog.EnvServer,
}

// EnvironmentPhrase reports whether text names an environment ("client sided").
func EnvironmentPhrase(text string) (catalog.Environment, bool) {
	env, ok := environmentPhrases[strings.ToLower(strings.Join(strings.Fields(text), " "))]
	return env, ok
}
