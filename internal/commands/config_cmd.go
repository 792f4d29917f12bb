// ABOUTME: Config command group for inspecting modscmd configuration
// ABOUTME: `config show` prints effective values and where the mods directory came from
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/config"
	"github.com/modscmd/modscmd/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect modscmd configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration in effect after applying the config file,
MODSCMD_* environment variables and command line flags.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := settings.cfg
	w := cmd.OutOrStdout()

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	hidden := "none"
	if len(cfg.HiddenModIDs) > 0 {
		hidden = strings.Join(cfg.HiddenModIDs, ", ")
	}

	fmt.Fprintln(w, ui.RenderHeader("modscmd configuration"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderDetail("Config file", path))
	fmt.Fprintln(w, ui.RenderDetail("Mods directory", settings.modsDir+" "+ui.Muted("("+settings.modsDirSource+")")))
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderSection("Settings", -1))
	fmt.Fprintln(w, ui.Indent(ui.RenderDetail(config.KeyPageSize, fmt.Sprintf("%d", pageSize())), 1))
	fmt.Fprintln(w, ui.Indent(ui.RenderDetail(config.KeyColorScheme, cfg.ColorScheme), 1))
	fmt.Fprintln(w, ui.Indent(ui.RenderDetail(config.KeyHiddenModIDs, hidden), 1))
	fmt.Fprintln(w, ui.Indent(ui.RenderDetail(config.KeyLabel, cfg.Label), 1))
	fmt.Fprintln(w, ui.Indent(ui.RenderDetail(config.KeyLogLevel, cfg.LogLevel), 1))
	return nil
}
