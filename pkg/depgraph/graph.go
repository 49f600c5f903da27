// Package depgraph models the dependency graph built from pipdeptree output.
//
// The graph is a flat node/edge structure: nodes are installed packages keyed
// on their normalized name, edges point from a package to the packages it
// requires. Iteration order is insertion order, so graphs built from the same
// tree serialize identically run to run.
package depgraph

import "errors"

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Node represents an installed package. ID is the normalized distribution
// name; Name keeps the spelling pipdeptree reported for display.
type Node struct {
	ID      string
	Name    string
	Version string
}

// Label returns the display text for the node: the reported name with the
// installed version on a second line, matching Graphviz multi-line labels.
func (n Node) Label() string {
	if n.Version == "" {
		return n.Name
	}
	return n.Name + "\n" + n.Version
}

// Edge is a directed requirement: From requires To. Requires carries the
// version constraint pipdeptree reported for the relation, if any.
type Edge struct {
	From     string
	To       string
	Requires string
}

// Graph is a directed dependency graph with insertion-ordered iteration.
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
	seen  map[Edge]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		seen:  make(map[Edge]bool),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID for empty IDs and ErrDuplicateNodeID if a node
// with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between existing nodes.
// Duplicate edges are ignored: the flat pipdeptree format reports every
// package at top level, so the same requirement is walked more than once.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if g.seen[e] {
		return nil
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	return nil
}

// Node returns the node with the given ID, or nil if it doesn't exist.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Roots returns the nodes with no incoming edges, in insertion order.
// For a dependency graph these are the top-level packages.
func (g *Graph) Roots() []*Node {
	hasParent := make(map[string]bool, len(g.edges))
	for _, e := range g.edges {
		hasParent[e.To] = true
	}
	var roots []*Node
	for _, id := range g.order {
		if !hasParent[id] {
			roots = append(roots, g.nodes[id])
		}
	}
	return roots
}

// Children returns the IDs of the direct dependencies of id, in edge order.
func (g *Graph) Children(id string) []string {
	var out []string
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}
