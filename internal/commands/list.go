// ABOUTME: List command showing installed mods one page at a time
// ABOUTME: Top-level mods by default, every mod with --all
package commands

import (
	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/cmdline"
	"github.com/modscmd/modscmd/internal/modview"
)

var (
	listAll    bool
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list [page]",
	Short: "List installed mods",
	Long: `List the installed mods, one page at a time.

Only top-level mods are shown by default; mods bundled inside or grouped
under another mod are listed with 'modscmd info <id> children'.`,
	Example: `  modscmd list
  modscmd list 2
  modscmd list --all --format table`,
	Aliases: []string{"ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listAll, "all", false, "Include child mods")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output format: json, table")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := validateFormat(listFormat); err != nil {
		return err
	}

	page := 1
	if len(args) == 1 {
		var err error
		if page, err = cmdline.ParsePage(args[0]); err != nil {
			return err
		}
	}

	env, _ := environmentFilter()
	q := catalog.Query{
		Kind:         catalog.ListAll,
		Page:         page,
		PageSize:     pageSize(),
		TopLevelOnly: !listAll,
		Environment:  env,
	}

	s, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	opts := modview.Options{
		Format:      listFormat,
		PageCommand: cliPageCommand(q, "", persistentHints(listAll)),
	}
	return renderQuery(cmd.OutOrStdout(), s, q, "", opts, modview.InfoOptions{})
}
