package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xui/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // svg, png, pdf, json, yaml, dot
	outline  bool     // stroke shape outlines in SVG
	ids      bool     // tag SVG polygons with their node id
	detailed bool     // detailed DOT labels
	scale    float64  // PNG resolution multiplier
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command for writing shape outputs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		flags      sceneFlags
		opts       = renderOpts{scale: pipeline.DefaultScale}
	)

	cmd := &cobra.Command{
		Use:   "render [markup]",
		Short: "Render a scene to SVG, PNG, PDF, JSON, YAML or DOT",
		Long: `Render a scene to one or more output formats.

Formats render concurrently. With a single format, --output names the file;
with several it is the base path and each format appends its extension.
PNG and PDF need rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &flags, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, yaml, dot (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "stroke shape outlines")
	cmd.Flags().BoolVar(&opts.ids, "ids", false, "tag shapes with their node id")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "detailed node labels (dot)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached snapshots and artifacts")
	flags.register(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, flags *sceneFlags, ro *renderOpts) error {
	opts, err := c.options(ctx, input, flags)
	if err != nil {
		return err
	}
	opts.Formats = ro.formats
	opts.Outline = ro.outline
	opts.IDs = ro.ids
	opts.Detailed = ro.detailed
	opts.Scale = ro.scale
	opts.Refresh = ro.refresh

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(ro.formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(result.Artifacts, ro.formats, ro.output, input); err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.Generation, result.CacheInfo.SnapshotHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes one file per format and lists them.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) error {
	paths := outputPaths(output, input, formats)
	printSuccess("Rendered %s", input)
	for _, format := range formats {
		path := paths[format]
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path. Without an output it strips the
// extension from input; an output ending in a format extension loses it.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps every format to its destination file.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// completeFormats completes the last comma-separated entry of --format.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range []string{
		pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF,
		pipeline.FormatJSON, pipeline.FormatYAML, pipeline.FormatDOT,
	} {
		if strings.HasPrefix(prefix+f, toComplete) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
