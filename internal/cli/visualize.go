package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xui/pkg/cache"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/pipeline"
	"github.com/matzehuels/xui/pkg/ui"
)

// visualizeCommand creates the visualize command for rendering a saved
// snapshot.
func (c *CLI) visualizeCommand() *cobra.Command {
	var formatsStr string
	ro := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "visualize [snapshot.json]",
		Short: "Render a snapshot written by 'layout'",
		Long: `Render a snapshot written by 'layout'.

The snapshot holds every transform and background, so this step only emits
shapes; no markup or stylesheet is read and no layout pass runs.

Use 'render' to go directly from markup to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(ro.formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], &ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, yaml, dot (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().BoolVar(&ro.outline, "outline", false, "stroke shape outlines")
	cmd.Flags().BoolVar(&ro.ids, "ids", false, "tag shapes with their node id")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "detailed node labels (dot)")
	cmd.Flags().Float64Var(&ro.scale, "scale", ro.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the snapshot and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, ro *renderOpts) error {
	data, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "file not found: %s", input)
	}
	if err != nil {
		return err
	}
	snap, err := ui.ReadSnapshot(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "load snapshot %s", input)
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Formats:  ro.formats,
		Outline:  ro.outline,
		IDs:      ro.ids,
		Detailed: ro.detailed,
		Scale:    ro.scale,
		Width:    snap.Viewport.X,
		Height:   snap.Viewport.Y,
		Logger:   c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Rendering snapshot...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, &snap, cache.Hash(data), opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifacts, ro.formats, ro.output, input); err != nil {
		return err
	}
	printStats(len(snap.Nodes), snap.Generation, cacheHit)
	return nil
}
