// Package render turns a dependency graph into images.
//
// The graph is first emitted as Graphviz DOT, then rendered to SVG with
// goccy/go-graphviz. PNG and PDF go through the SVG and rsvg-convert, which
// produces noticeably better text rendering than Graphviz's raster output.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/pipgraph/pkg/depgraph"
	"github.com/matzehuels/pipgraph/pkg/errors"
)

// Rank directions accepted by Graphviz.
const (
	RankTB = "TB" // top to bottom (default)
	RankLR = "LR" // left to right
	RankBT = "BT"
	RankRL = "RL"
)

// Options configures DOT emission.
type Options struct {
	// RankDir sets the Graphviz layout direction. Empty means RankTB.
	RankDir string

	// Labels controls node label content: "full" shows name and installed
	// version, "name" shows just the name. Empty means "full".
	Labels string

	// Requires annotates edges with their version constraints.
	Requires bool
}

// ValidateRankDir checks the --rankdir value against what Graphviz accepts.
func ValidateRankDir(dir string) error {
	switch dir {
	case "", RankTB, RankLR, RankBT, RankRL:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidRankDir, "invalid rankdir: %s (must be TB, LR, BT, or RL)", dir)
}

// ToDOT converts a dependency graph to Graphviz DOT format.
// Node IDs are the normalized package names; labels carry the reported
// spelling and installed version. The resulting DOT string can be rendered
// with [SVG], [PNG], or [PDF].
func ToDOT(g *depgraph.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = RankTB
	}

	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(*n, opts.Labels))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.Requires && e.Requires != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=9];\n", e.From, e.To, e.Requires)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n depgraph.Node, mode string) string {
	if strings.EqualFold(mode, "name") {
		return n.Name
	}
	return n.Label()
}
