// ABOUTME: Info command showing one mod's details or a page of its child mods
// ABOUTME: Completes mod ids from the scanned mods directory
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/cmdline"
	"github.com/modscmd/modscmd/internal/modview"
)

var (
	infoTree   bool
	infoFormat string
)

var infoCmd = &cobra.Command{
	Use:   "info <id> [children [page]]",
	Short: "Show details about a mod",
	Long: `Show the details of one mod: version, authors, license, contact links,
environment and the mods grouped under it.

Add 'children' to page through its child mods instead.`,
	Example: `  modscmd info sodium
  modscmd info fabric-api --tree
  modscmd info fabric-api children 2`,
	Args:              cobra.RangeArgs(1, 3),
	ValidArgsFunction: modIDCompletionFunc,
	RunE:              runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoTree, "tree", false, "Show every descendant as a tree")
	infoCmd.Flags().StringVar(&infoFormat, "format", "", "Output format: json, table")
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := validateFormat(infoFormat); err != nil {
		return err
	}

	id := args[0]
	p := cmdline.NewParser("modscmd", pageSize())
	command := p.Info(id)

	if len(args) > 1 {
		if strings.ToLower(args[1]) != "children" {
			return fmt.Errorf("unknown argument %q: expected 'children'", args[1])
		}
		page := 1
		if len(args) == 3 {
			var err error
			if page, err = cmdline.ParsePage(args[2]); err != nil {
				return err
			}
		}
		command = p.Children(id, page)
	}

	q := command.Query
	q.Environment, _ = environmentFilter()

	s, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	opts := modview.Options{
		Format:          infoFormat,
		PageCommand:     cliPageCommand(q, "", persistentHints(false)),
		ChildrenCommand: cliChildrenCommand,
		Raw:             rawOutput(),
	}
	return renderQuery(cmd.OutOrStdout(), s, q, "", opts, modview.InfoOptions{Tree: infoTree})
}

// modIDCompletionFunc provides tab completion for mod ids, then "children".
func modIDCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
	case 1:
		return []string{"children"}, cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	if settings.cfg == nil {
		if err := loadSettings(cmd, args); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := loadSnapshot(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, rec := range s.All() {
		if strings.HasPrefix(rec.ID, toComplete) {
			completions = append(completions, rec.ID+"\t"+rec.DisplayName())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
