// ABOUTME: Interactive shell answering chat-style mod commands from stdin
// ABOUTME: With --watch the catalog is rebuilt and swapped when jars change
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/cmdline"
	"github.com/modscmd/modscmd/internal/dump"
	"github.com/modscmd/modscmd/internal/modview"
	"github.com/modscmd/modscmd/internal/ui"
	"github.com/modscmd/modscmd/internal/watch"
)

var shellWatch bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Answer mod commands typed one per line",
	Long: `Read commands from stdin, one per line, in the same form players type
them in chat (the command word is the configured label, "mods" by default):

  mods                              list top-level mods
  mods page <n>                     another page of the list
  mods info <id>                    details of one mod
  mods info <id> children [<n>]     child mods of a mod
  mods search <query...> [<n>]      fuzzy search
  dumpmods                          write installed-mods.yml
  help, exit

With --watch, adding or removing jars reloads the catalog without
interrupting queries in progress.`,
	Example: `  modscmd shell --watch
  echo "mods search sodium" | modscmd shell`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().BoolVar(&shellWatch, "watch", false, "Reload the catalog when the mods directory changes")
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}
	holder := catalog.NewHolder(s)

	if shellWatch {
		w, err := watch.New(watch.Config{
			Dir:      settings.modsDir,
			Logger:   settings.logger,
			OnChange: watch.Reloader(loadSnapshot, holder, settings.logger, nil),
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				settings.logger.Error("watching mods directory stopped", "err", err)
			}
		}()
	}

	sh := &shell{
		out:         cmd.OutOrStdout(),
		holder:      holder,
		parser:      cmdline.NewParser(settings.cfg.Label, pageSize()),
		interactive: ui.StdinIsTerminal(),
	}
	return sh.run(ctx, cmd.InOrStdin())
}

type shell struct {
	out         io.Writer
	holder      *catalog.Holder
	parser      *cmdline.Parser
	interactive bool
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	if sh.interactive {
		fmt.Fprintf(sh.out, "%s %d mods loaded. Type 'help' for commands, 'exit' to quit.\n",
			ui.Info(ui.SymbolInfo), sh.holder.Load().Len())
	}

	for {
		sh.prompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(line)
			switch strings.ToLower(line) {
			case "":
				continue
			case "exit", "quit":
				return nil
			}
			if err := sh.execute(line); err != nil {
				fmt.Fprintln(sh.out, ui.FormatError(err))
			}
		}
	}
}

func (sh *shell) prompt() {
	if sh.interactive {
		fmt.Fprint(sh.out, ui.Muted("> "))
	}
}

// execute answers one line against the snapshot current when it started.
func (sh *shell) execute(line string) error {
	command, err := sh.parser.ParseLine(line)
	if err != nil {
		return err
	}

	s := sh.holder.Load()
	switch command.Kind {
	case cmdline.KindHelp:
		fmt.Fprintln(sh.out, ui.RenderSection("Commands", -1))
		fmt.Fprintln(sh.out, sh.parser.Usage())
		return nil

	case cmdline.KindDump:
		path := dump.DefaultPath(settings.modsDir)
		info := dump.Info{Version: rootCmd.Version, ModsDir: settings.modsDir}
		if _, err := dump.Write(path, s, info); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "%s Saved list of installed mods to %s\n", ui.Success(ui.SymbolSuccess), ui.Name(path))
		return nil
	}

	q := command.Query
	if q.Environment == "" {
		q.Environment, _ = environmentFilter()
	}
	opts := modview.Options{
		PageCommand: func(page int) string { return sh.parser.PageLine(command, page) },
		ChildrenCommand: func(id string) string {
			return sh.parser.PageLine(sh.parser.Children(id, 1), 1)
		},
		Raw: rawOutput(),
	}
	return renderQuery(sh.out, s, q, command.Display, opts, modview.InfoOptions{})
}
