// ABOUTME: Root command and CLI initialization for modscmd
// ABOUTME: Sets up cobra command structure, global flags, config, logging and colors
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/config"
	"github.com/modscmd/modscmd/internal/logging"
	"github.com/modscmd/modscmd/internal/ui"
)

var (
	configPath   string
	modsDirFlag  string
	verbose      bool
	pageSizeFlag int
	envFlag      string
)

// settings is the state every subcommand works from, filled in before it runs.
var settings struct {
	cfg           *config.Config
	logger        *log.Logger
	modsDir       string
	modsDirSource string
}

var rootCmd = &cobra.Command{
	Use:   "modscmd",
	Short: "Browse and search the mods installed in a Minecraft instance",
	Long: `modscmd reads the mod jars in a mods directory and lets you list,
inspect and fuzzy-search them.

It understands Fabric, Quilt and Forge/NeoForge mods, including mods
bundled inside other jars, and groups library modules under their parent.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command, cancelling its context on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version for the root command
func SetVersion(version string) {
	rootCmd.Version = version
}

func init() {
	// Set up custom help template with lipgloss styling
	ui.SetupHelpTemplate(rootCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $MODSCMD_HOME/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&modsDirFlag, "mods-dir", "", "Mods directory to scan")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log scanning details to stderr")
	rootCmd.PersistentFlags().IntVar(&pageSizeFlag, "page-size", 0, "Results per page (default from config)")
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "Only show mods for an environment: client, server or universal")

	rootCmd.RegisterFlagCompletionFunc("env", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(catalog.EnvClient), string(catalog.EnvServer), string(catalog.EnvUniversal)}, cobra.ShellCompDirectiveNoFileComp
	})
}

func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	settings.cfg = cfg
	settings.logger = logging.New(cmd.ErrOrStderr(), level)
	settings.modsDir, settings.modsDirSource = config.ResolveModsDir(modsDirFlag, cfg)

	if err := ui.ApplyColorScheme(cfg.ColorScheme); err != nil {
		return err
	}
	if pageSizeFlag < 0 {
		return fmt.Errorf("--page-size must be at least 1, got %d", pageSizeFlag)
	}
	if _, err := environmentFilter(); err != nil {
		return err
	}

	settings.logger.Debug("settings loaded", "mods_dir", settings.modsDir, "source", settings.modsDirSource)
	return nil
}

// pageSize returns --page-size when given, else the configured page size.
func pageSize() int {
	if pageSizeFlag > 0 {
		return pageSizeFlag
	}
	return settings.cfg.PageSize
}

// environmentFilter parses --env.
func environmentFilter() (catalog.Environment, error) {
	switch env := catalog.Environment(strings.ToLower(strings.TrimSpace(envFlag))); env {
	case "", catalog.EnvClient, catalog.EnvServer, catalog.EnvUniversal:
		return env, nil
	default:
		return "", fmt.Errorf("invalid --env %q: must be client, server or universal", envFlag)
	}
}
