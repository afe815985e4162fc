package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdsync/internal/logging"
	"github.com/yaklabco/mdsync/internal/ui/pretty"
	"github.com/yaklabco/mdsync/pkg/config"
	"github.com/yaklabco/mdsync/pkg/linemap"
	rgoldmark "github.com/yaklabco/mdsync/pkg/render/goldmark"
)

func newMapCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map FILE",
		Short: "Render a Markdown file and print its line map",
		Long: `Render FILE into a measured block tree, build the line map over it, and
print one row per block: line range, kind, vertical offset, height, and
detected language for code fences.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, opts, args[0])
		},
	}
	return cmd
}

func runMap(cmd *cobra.Command, opts *rootOptions, path string) error {
	cfg, mapper, err := buildMapper(cmd, opts, path)
	if err != nil {
		return err
	}
	defer mapper.Destroy()

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.ColorEnabled(colorMode(opts, cfg), out))

	var lastUpdate linemap.UpdateEvent
	var lastError *linemap.ErrorEvent
	mapper.OnUpdate(func(ev linemap.UpdateEvent) { lastUpdate = ev })
	mapper.OnError(func(ev linemap.ErrorEvent) { lastError = &ev })
	mapper.Init()

	table := pretty.NewTableFormatter(styles, terminalWidth(out))
	fmt.Fprint(out, table.FormatTree(mapper.Tree()))

	summary := pretty.NewSummaryFormatter(styles)
	if lastError != nil {
		fmt.Fprintln(out, summary.FormatError(*lastError))
		return fmt.Errorf("map build failed: %s", lastError.Message)
	}
	fmt.Fprintln(out, summary.FormatBuild(lastUpdate, mapper.TotalMappedHeight()))
	return nil
}

// buildMapper loads config, renders the file, and wires a mapper over the
// resulting tree. Shared by the map and resolve commands.
func buildMapper(cmd *cobra.Command, opts *rootOptions, path string) (*config.Config, *linemap.Mapper, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	logger := logging.New(cfg.LogLevel)
	if opts.debug {
		logger = logging.New("debug")
	}
	ctx := logging.WithLogger(cmd.Context(), logger)

	renderer := rgoldmark.New(string(cfg.Flavor), cfg.Metrics())
	tree, err := renderer.Render(ctx, content)
	if err != nil {
		return nil, nil, err
	}

	mapper := linemap.New(tree, linemap.Options{
		RebuildDebounce: cfg.Debounce(),
		Debug:           opts.debug,
		Logger:          logger,
	})
	return cfg, mapper, nil
}

// colorMode resolves the effective color setting: flag wins over config.
func colorMode(opts *rootOptions, cfg *config.Config) string {
	if opts.color != "" {
		return opts.color
	}
	if cfg.Color != "" {
		return cfg.Color
	}
	return "auto"
}

// terminalWidth probes the writer for a terminal width, returning 0 when the
// writer is not a terminal.
func terminalWidth(out any) int {
	f, ok := out.(*os.File)
	if !ok {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
