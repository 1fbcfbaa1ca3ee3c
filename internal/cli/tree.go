package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xui/pkg/dot"
)

// treeCommand creates the tree command, which draws the node tree with
// Graphviz.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		flags    sceneFlags
	)

	cmd := &cobra.Command{
		Use:   "tree [markup]",
		Short: "Draw the node tree as a Graphviz diagram",
		Long: `Draw the node tree as a Graphviz diagram.

The output format follows the extension of --output: .svg (default), .png,
.pdf or .dot for the DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args[0], &flags, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.tree.svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show kind, rank, size and classes")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input string, flags *sceneFlags, output string, detailed bool) error {
	e, _, err := c.solve(ctx, input, flags)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".tree.svg"
	}

	snap := e.Snapshot()
	src := dot.ToDOT(&snap, dot.Options{Detailed: detailed})

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".dot", ".gv":
		data = []byte(src)
	case ".png":
		data, err = dot.RenderPNG(ctx, src, 2)
	case ".pdf":
		data, err = dot.RenderPDF(ctx, src)
	case ".svg", "":
		data, err = dot.RenderSVG(ctx, src)
	default:
		return fmt.Errorf("unsupported tree output %q (want .svg, .png, .pdf or .dot)", ext)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Tree diagram complete")
	printFile(output)
	return nil
}
