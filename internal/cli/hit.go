package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/xui/pkg/errors"
)

// hitCommand creates the hit command, which lists the nodes under a point.
func (c *CLI) hitCommand() *cobra.Command {
	var (
		x, y  float64
		flags sceneFlags
	)

	cmd := &cobra.Command{
		Use:   "hit [markup]",
		Short: "List the nodes under a point, deepest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("x") || !cmd.Flags().Changed("y") {
				return errors.New(errors.ErrCodeInvalidInput, "both --x and --y are required")
			}
			e, _, err := c.solve(cmd.Context(), args[0], &flags)
			if err != nil {
				return err
			}
			printIDs(e.At(x, y))
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate in pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate in pixels")
	flags.register(cmd)

	return cmd
}
