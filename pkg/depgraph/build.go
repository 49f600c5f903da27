package depgraph

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pipgraph/pkg/pipdeptree"
)

// Build walks a pipdeptree dependency tree and constructs the graph.
//
// Each package becomes one node regardless of how many parents reach it;
// each parent/child pair becomes one edge. Both pipdeptree shapes work: the
// nested tree recurses all the way down, the flat format contributes one
// level per top-level entry.
func Build(roots []*pipdeptree.Node) *Graph {
	g := New()
	for _, root := range roots {
		addSubtree(g, root, "")
	}
	return g
}

// addSubtree ensures a node for n, connects it to its parent, and recurses.
func addSubtree(g *Graph, n *pipdeptree.Node, parent string) {
	id := nodeID(n)
	if id == "" {
		return
	}

	if existing := g.Node(id); existing == nil {
		_ = g.AddNode(Node{ID: id, Name: displayName(n), Version: n.Version})
	} else if existing.Version == "" && n.Version != "" {
		// The flat format repeats packages; a later sighting may carry the
		// installed version a dependency stub omitted.
		existing.Version = n.Version
	}

	if parent != "" {
		_ = g.AddEdge(Edge{From: parent, To: id, Requires: n.RequiredVersion})
	}

	for _, dep := range n.Dependencies {
		addSubtree(g, dep, id)
	}
}

// nodeID derives the canonical node ID for a tree entry.
func nodeID(n *pipdeptree.Node) string {
	if n.Name != "" {
		return pipdeptree.NormalizeName(n.Name)
	}
	return pipdeptree.NormalizeName(n.Key)
}

// displayName keeps the spelling pipdeptree reported, falling back to the key.
func displayName(n *pipdeptree.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.Key
}

// Snapshot wraps a graph with provenance: when it was captured and from
// which interpreter. IDs are random UUIDs so snapshots can be told apart
// after the fact.
type Snapshot struct {
	ID         string
	CapturedAt time.Time
	Python     string
	Graph      *Graph
}

// NewSnapshot creates a snapshot of g captured now.
// python may be empty when the PATH pipdeptree executable was used.
func NewSnapshot(g *Graph, python string) *Snapshot {
	return &Snapshot{
		ID:         uuid.NewString(),
		CapturedAt: time.Now().UTC(),
		Python:     python,
		Graph:      g,
	}
}
