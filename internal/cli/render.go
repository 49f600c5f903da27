package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipgraph/pkg/depgraph"
	"github.com/matzehuels/pipgraph/pkg/errors"
	"github.com/matzehuels/pipgraph/pkg/render"
)

// pngScale renders PNGs at 2x resolution for high-DPI displays.
const pngScale = 2.0

// renderOpts holds the flags controlling image output.
type renderOpts struct {
	output   string // output file (single format) or base path (multiple)
	rankdir  string // Graphviz layout direction
	labels   string // node label mode: full, name
	requires bool   // annotate edges with version constraints
}

// addRenderFlags registers the rendering flags on cmd.
func (c *CLI) addRenderFlags(cmd *cobra.Command, o *renderOpts, formatsStr *string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(formatsStr, "format", "f", c.Config.Format, "output format(s): png (default), svg, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&o.rankdir, "rankdir", c.Config.RankDir, "layout direction: TB (default), LR, BT, RL")
	cmd.Flags().StringVar(&o.labels, "labels", c.Config.Labels, "node labels: full (name and version, default), name")
	cmd.Flags().BoolVar(&o.requires, "requires", false, "annotate edges with version constraints")
}

// dotOptions converts render flags into DOT emission options.
func (o *renderOpts) dotOptions() render.Options {
	return render.Options{
		RankDir:  o.rankdir,
		Labels:   o.labels,
		Requires: o.requires,
	}
}

// validate checks flag values that have a fixed set of accepted inputs.
func (o *renderOpts) validate(formats []string) error {
	if err := validateFormats(formats); err != nil {
		return err
	}
	return render.ValidateRankDir(o.rankdir)
}

func errInvalidFormat(f string) error {
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be svg, png, pdf, dot, or json)", f)
}

// renderCommand creates the render command for turning saved snapshots into images.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a saved snapshot to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := opts.validate(formats); err != nil {
				return err
			}

			snap, err := depgraph.ReadFile(args[0])
			if err != nil {
				return err
			}
			c.Logger.Infof("Loaded snapshot: %d packages, %d dependencies",
				snap.Graph.NodeCount(), snap.Graph.EdgeCount())

			base := basePath(opts.output, args[0])
			if err := checkNotInput(args[0], formats, base, opts.output); err != nil {
				return err
			}
			return c.writeOutputs(cmd.Context(), snap, formats, base, &opts)
		},
	}

	c.addRenderFlags(cmd, &opts, &formatsStr)
	return cmd
}

// writeOutputs renders every requested format and writes the files.
func (c *CLI) writeOutputs(ctx context.Context, snap *depgraph.Snapshot, formats []string, base string, opts *renderOpts) error {
	for _, format := range formats {
		sp := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
		sp.Start()
		data, err := c.renderFormat(ctx, snap, format, opts)
		sp.Stop()
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		c.Logger.Debugf("Generated %s: %d bytes", format, len(data))

		path := outputPath(format, base, len(formats) == 1, opts.output)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// outputPath returns the file a format will be written to. With a single
// format and an explicit output the path is used verbatim; otherwise file
// names derive from base.
func outputPath(format, base string, single bool, output string) string {
	if single && output != "" {
		return output
	}
	return base + "." + format
}

// checkNotInput rejects output paths that would clobber the snapshot being
// rendered, which "render graph.json -f json" hits with no -o at all.
func checkNotInput(input string, formats []string, base, output string) error {
	in := filepath.Clean(input)
	for _, format := range formats {
		if filepath.Clean(outputPath(format, base, len(formats) == 1, output)) == in {
			return errors.New(errors.ErrCodeInvalidInput,
				"writing %s would overwrite the input file; choose a different path with -o", in)
		}
	}
	return nil
}

// renderFormat dispatches to the renderer for a single format.
func (c *CLI) renderFormat(ctx context.Context, snap *depgraph.Snapshot, format string, opts *renderOpts) ([]byte, error) {
	if format == "json" {
		var buf bytes.Buffer
		if err := depgraph.WriteJSON(snap, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := render.ToDOT(snap.Graph, opts.dotOptions())
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		c.Logger.Debug("Rendering SVG")
		return render.SVG(ctx, dot)
	case "png":
		c.Logger.Debug("Rendering PNG")
		return render.PNG(ctx, dot, pngScale)
	case "pdf":
		c.Logger.Debug("Rendering PDF")
		return render.PDF(ctx, dot)
	default:
		return nil, errInvalidFormat(format)
	}
}
