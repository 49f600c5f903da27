package cli

import (
	"github.com/spf13/cobra"
)

// graphCommand creates the graph command, the end-to-end path: run
// pipdeptree, build the graph, render, write the image.
func (c *CLI) graphCommand() *cobra.Command {
	var capOpts captureOpts
	var renOpts renderOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Capture the environment and render the dependency graph",
		Long: `Capture the current Python environment with pipdeptree and render its
dependency graph as an image in one step.

Examples:
  pipgraph graph                             # dependencies.png for the active environment
  pipgraph graph --python .venv/bin/python   # inspect a virtualenv
  pipgraph graph -f svg,png -o deps          # deps.svg and deps.png
  pipgraph graph -p flask --rankdir LR       # just flask's subtree, left to right`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := renOpts.validate(formats); err != nil {
				return err
			}

			snap, cached, err := c.capture(cmd.Context(), &capOpts)
			if err != nil {
				return err
			}
			printStats(snap.Graph.NodeCount(), snap.Graph.EdgeCount(), cached)

			base := basePath(renOpts.output, defaultBase)
			return c.writeOutputs(cmd.Context(), snap, formats, base, &renOpts)
		},
	}

	addCaptureFlags(cmd, &capOpts)
	c.addRenderFlags(cmd, &renOpts, &formatsStr)
	return cmd
}
