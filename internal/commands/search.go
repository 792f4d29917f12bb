// ABOUTME: Search command fuzzy-matching mods by name, id, description and author
// ABOUTME: A trailing number selects the page, as in the chat command
package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/cmdline"
	"github.com/modscmd/modscmd/internal/modview"
)

var searchFormat string

var searchCmd = &cobra.Command{
	Use:   "search <query...> [page]",
	Short: "Fuzzy-search installed mods",
	Long: `Search every installed mod, including child mods, by name, id,
description and author. Characters of the query must appear in order but
need not be adjacent; closer matches rank higher.

When more than one word is given and the last one is a number, it selects
the page. "client sided" and "server sided" list mods for that environment.`,
	Example: `  # Find the Fabric API and its modules
  modscmd search fabric api

  # Second page of results
  modscmd search fabric api 2

  # Machine readable output
  modscmd search sodium --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchFormat, "format", "", "Output format: json, table")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validateFormat(searchFormat); err != nil {
		return err
	}

	tokens := strings.Fields(strings.ToLower(strings.Join(args, " ")))
	terms, page, err := cmdline.SplitPage(tokens)
	if err != nil {
		return err
	}

	command := cmdline.NewParser("modscmd", pageSize()).Search(strings.Join(terms, " "), page)
	q := command.Query
	if env, _ := environmentFilter(); env != "" {
		q.Environment = env
	}

	s, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	opts := modview.Options{
		Format:      searchFormat,
		PageCommand: cliPageCommand(q, command.Display, persistentHints(false)),
	}
	return renderQuery(cmd.OutOrStdout(), s, q, command.Display, opts, modview.InfoOptions{})
}

