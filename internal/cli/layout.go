package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xui/pkg/pipeline"
	"github.com/matzehuels/xui/pkg/ui"
)

// layoutCommand creates the layout command for solving a scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   sceneFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [markup]",
		Short: "Solve a scene and write its snapshot",
		Long: `Solve a scene and write its snapshot.

The layout command loads a markup document and its stylesheets, runs one
layout pass and writes every node's transform as a snapshot. The snapshot is
JSON unless the output path ends in .yaml or .yml; "-" writes to stdout.

Snapshots are cached locally, keyed by the content of the inputs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], &flags, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached snapshots")
	flags.register(cmd)

	return cmd
}

// runLayout solves the scene and writes the snapshot.
func (c *CLI) runLayout(ctx context.Context, input string, flags *sceneFlags, output string, noCache, refresh bool) error {
	opts, err := c.options(ctx, input, flags)
	if err != nil {
		return err
	}
	opts.Refresh = refresh

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Solving layout...")
	spinner.Start()

	snap, cacheHit, err := runner.SnapshotWithCacheInfo(ctx, opts, nil)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := writeSnapshot(&snap, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(snap.Nodes), snap.Generation, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}

// writeSnapshot writes snap to path, choosing YAML by extension.
func writeSnapshot(snap *ui.Snapshot, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return snap.WriteYAML(w)
	default:
		return snap.WriteJSON(w)
	}
}

// solve loads and solves the scene without the cache, for commands that
// need the live engine.
func (c *CLI) solve(ctx context.Context, input string, flags *sceneFlags) (*ui.Engine, pipeline.Options, error) {
	opts, err := c.options(ctx, input, flags)
	if err != nil {
		return nil, opts, err
	}
	prog := newProgress(loggerFromContext(ctx))
	e, _, err := pipeline.Build(ctx, opts)
	if err != nil {
		return nil, opts, err
	}
	prog.done(fmt.Sprintf("Solved %d nodes", e.Len()))
	return e, opts, nil
}
