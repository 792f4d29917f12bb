// ABOUTME: Dump command writing the installed mod tree to installed-mods.yml
// ABOUTME: Includes operating system and runtime details for bug reports
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/dump"
	"github.com/modscmd/modscmd/internal/ui"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Save the list of installed mods to a YAML file",
	Long: `Write every installed mod, nested under its parent, together with
operating system and runtime details to installed-mods.yml.

By default the file is written next to the mods directory. Use '-' to
print the document instead.`,
	Example: `  modscmd dump
  modscmd dump --output /tmp/mods.yml
  modscmd dump --output - | less`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "Output path (default: installed-mods.yml next to the mods directory)")
}

func runDump(cmd *cobra.Command, args []string) error {
	s, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	info := dump.Info{Version: rootCmd.Version, ModsDir: settings.modsDir, Args: os.Args[1:]}

	if dumpOutput == "-" {
		return dump.Encode(cmd.OutOrStdout(), dump.Build(s, info))
	}

	path := dumpOutput
	if path == "" {
		path = dump.DefaultPath(settings.modsDir)
	}
	if _, err := dump.Write(path, s, info); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved list of %d installed mods to %s\n",
		ui.Success(ui.SymbolSuccess), s.Len(), ui.Name(path))
	return nil
}
