package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipgraph/pkg/cache"
	"github.com/matzehuels/pipgraph/pkg/depgraph"
	"github.com/matzehuels/pipgraph/pkg/pipdeptree"
)

// captureOpts holds the flags shared by every command that runs pipdeptree.
type captureOpts struct {
	python    string   // interpreter whose environment to inspect
	flat      bool     // use the flat --json format
	localOnly bool     // exclude globally-installed packages
	userOnly  bool     // only user-site packages
	packages  []string // restrict to these packages
	exclude   []string // drop these packages
	noCache   bool     // disable the snapshot cache
	refresh   bool     // bypass cached snapshots
}

// addCaptureFlags registers the pipdeptree flags on cmd.
func addCaptureFlags(cmd *cobra.Command, o *captureOpts) {
	cmd.Flags().StringVar(&o.python, "python", "", "Python interpreter to inspect (runs python -m pipdeptree)")
	cmd.Flags().BoolVar(&o.flat, "flat", false, "use pipdeptree's flat --json output")
	cmd.Flags().BoolVar(&o.localOnly, "local-only", false, "exclude globally-installed packages")
	cmd.Flags().BoolVar(&o.userOnly, "user-only", false, "only user-site packages")
	cmd.Flags().StringSliceVarP(&o.packages, "packages", "p", nil, "restrict to these packages and their subtrees")
	cmd.Flags().StringSliceVarP(&o.exclude, "exclude", "e", nil, "exclude these packages")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the snapshot cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached snapshots")
}

// pipOptions merges the flags with config defaults into pipdeptree options.
func (c *CLI) pipOptions(o *captureOpts) pipdeptree.Options {
	python := o.python
	if python == "" {
		python = c.Config.Python
	}
	exclude := append([]string{}, c.Config.Exclude...)
	exclude = append(exclude, o.exclude...)

	return pipdeptree.Options{
		Python:    python,
		Flat:      o.flat,
		LocalOnly: o.localOnly,
		UserOnly:  o.userOnly,
		Packages:  o.packages,
		Exclude:   exclude,
	}
}

// capture runs pipdeptree (or serves its output from cache) and builds the
// dependency graph. The second return reports whether the data was cached.
func (c *CLI) capture(ctx context.Context, o *captureOpts) (*depgraph.Snapshot, bool, error) {
	opts := c.pipOptions(o)
	key := cache.SnapshotKey(opts.Python, opts.Args())

	store := c.newCache(o.noCache)
	defer store.Close()

	if !o.refresh {
		if data, hit, err := store.Get(ctx, key); err == nil && hit {
			c.Logger.Debugf("Using cached snapshot for key %s", key[:20])
			snap, err := buildSnapshot(data, opts.Python)
			if err == nil {
				return snap, true, nil
			}
			// Stale or incompatible entry - fall through to a fresh run
			_ = store.Delete(ctx, key)
		}
	}

	prog := newProgress(c.Logger)
	c.Logger.Debug("Running pipdeptree")

	raw, err := pipdeptree.NewRunner().Run(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	snap, err := buildSnapshot(raw, opts.Python)
	if err != nil {
		return nil, false, err
	}
	prog.done(fmt.Sprintf("Captured %d packages with %d dependencies",
		snap.Graph.NodeCount(), snap.Graph.EdgeCount()))

	if err := store.Set(ctx, key, raw, cache.DefaultTTL); err != nil {
		c.Logger.Debugf("Snapshot not cached: %v", err)
	}
	return snap, false, nil
}

// buildSnapshot decodes raw pipdeptree JSON and builds the graph.
func buildSnapshot(raw []byte, python string) (*depgraph.Snapshot, error) {
	tree, err := pipdeptree.Decode(raw)
	if err != nil {
		return nil, err
	}
	return depgraph.NewSnapshot(depgraph.Build(tree), python), nil
}

// snapshotCommand creates the snapshot command: capture the environment and
// write the graph as JSON for later rendering.
func (c *CLI) snapshotCommand() *cobra.Command {
	var opts captureOpts
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the environment's dependency graph as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, cached, err := c.capture(cmd.Context(), &opts)
			if err != nil {
				return err
			}

			if err := writeSnapshot(snap, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Saved snapshot %s", snap.ID)
				printStats(snap.Graph.NodeCount(), snap.Graph.EdgeCount(), cached)
				printFile(output)
				printNextStep("Render it", fmt.Sprintf("pipgraph render %s", output))
			}
			return nil
		},
	}

	addCaptureFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// writeSnapshot serializes a snapshot as JSON to path (stdout if empty).
func writeSnapshot(s *depgraph.Snapshot, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return depgraph.WriteJSON(s, out)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
