package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsync/internal/ui/pretty"
	"github.com/yaklabco/mdsync/pkg/linemap"
)

// resolveFlags holds the flags for the resolve command.
type resolveFlags struct {
	line   int
	offset float64
}

func newResolveCommand(opts *rootOptions) *cobra.Command {
	flags := &resolveFlags{line: -1, offset: -1}

	cmd := &cobra.Command{
		Use:   "resolve FILE (--line N | --offset PX)",
		Short: "Resolve a source line to a preview offset, or an offset to a line",
		Long: `Build the line map for FILE and run one of the bidirectional queries:

  mdsync resolve doc.md --line 42      offset and containing block for line 42
  mdsync resolve doc.md --offset 360   (possibly fractional) line at 360px`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, flags, args[0])
		},
	}

	cmd.Flags().IntVar(&flags.line, "line", -1, "1-based source line to resolve")
	cmd.Flags().Float64Var(&flags.offset, "offset", -1, "vertical pixel offset to resolve")

	return cmd
}

func runResolve(cmd *cobra.Command, opts *rootOptions, flags *resolveFlags, path string) error {
	hasLine := flags.line >= 0
	hasOffset := flags.offset >= 0
	if hasLine == hasOffset {
		return fmt.Errorf("exactly one of --line or --offset is required")
	}

	cfg, mapper, err := buildMapper(cmd, opts, path)
	if err != nil {
		return err
	}
	defer mapper.Destroy()
	mapper.Init()

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.ColorEnabled(colorMode(opts, cfg), out))

	if hasLine {
		printLineResolution(out, styles, mapper, flags.line)
	} else {
		printOffsetResolution(out, styles, mapper, flags.offset)
	}
	return nil
}

func printLineResolution(out io.Writer, styles *pretty.Styles, mapper *linemap.Mapper, line int) {
	offset := mapper.ScrollPositionForLine(line)
	fmt.Fprintf(out, "%s %s\n",
		styles.Label.Render("offset:"),
		styles.Value.Render(fmt.Sprintf("%.1fpx", offset)))

	if blk := mapper.ElementForLine(line); blk != nil {
		fmt.Fprintf(out, "%s %s\n",
			styles.Label.Render("block:"),
			styles.Value.Render(fmt.Sprintf("#%d %s lines %d-%d",
				blk.ID, blk.Kind, blk.Range.Start, blk.Range.End)))
	} else {
		fmt.Fprintf(out, "%s %s\n",
			styles.Label.Render("block:"),
			styles.Dim.Render("none"))
	}

	fmt.Fprintf(out, "%s %s\n",
		styles.Label.Render("raw zone:"),
		styles.Value.Render(fmt.Sprintf("%t", mapper.IsRawZone(line))))
}

func printOffsetResolution(out io.Writer, styles *pretty.Styles, mapper *linemap.Mapper, offset float64) {
	line := mapper.LineForScrollPosition(offset)
	fmt.Fprintf(out, "%s %s\n",
		styles.Label.Render("line:"),
		styles.Value.Render(fmt.Sprintf("%.2f", line)))

	if blk := mapper.ElementForLine(int(line)); blk != nil {
		fmt.Fprintf(out, "%s %s\n",
			styles.Label.Render("block:"),
			styles.Value.Render(fmt.Sprintf("#%d %s lines %d-%d",
				blk.ID, blk.Kind, blk.Range.Start, blk.Range.End)))
	}
}
