package depgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/pipgraph/pkg/errors"
)

// snapshotJSON is the wire format for saved snapshots.
type snapshotJSON struct {
	ID         string    `json:"id"`
	CapturedAt time.Time `json:"captured_at"`
	Python     string    `json:"python,omitempty"`
	Graph      graphJSON `json:"graph"`
}

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

type edgeJSON struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Requires string `json:"requires,omitempty"`
}

// WriteJSON encodes a snapshot as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for later rendering.
func WriteJSON(s *Snapshot, w io.Writer) error {
	out := snapshotJSON{
		ID:         s.ID,
		CapturedAt: s.CapturedAt,
		Python:     s.Python,
		Graph: graphJSON{
			Nodes: make([]nodeJSON, 0, s.Graph.NodeCount()),
			Edges: make([]edgeJSON, 0, s.Graph.EdgeCount()),
		},
	}
	for _, n := range s.Graph.Nodes() {
		nd := nodeJSON{ID: n.ID, Version: n.Version}
		if n.Name != n.ID {
			nd.Name = n.Name
		}
		out.Graph.Nodes = append(out.Graph.Nodes, nd)
	}
	for _, e := range s.Graph.Edges() {
		out.Graph.Edges = append(out.Graph.Edges, edgeJSON{From: e.From, To: e.To, Requires: e.Requires})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a snapshot from r and validates edge endpoints.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	var in snapshotJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode graph")
	}

	g := New()
	for _, n := range in.Graph.Nodes {
		name := n.Name
		if name == "" {
			name = n.ID
		}
		if err := g.AddNode(Node{ID: n.ID, Name: name, Version: n.Version}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %q", n.ID)
		}
	}
	for _, e := range in.Graph.Edges {
		if err := g.AddEdge(Edge{From: e.From, To: e.To, Requires: e.Requires}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s -> %s", e.From, e.To)
		}
	}

	return &Snapshot{
		ID:         in.ID,
		CapturedAt: in.CapturedAt,
		Python:     in.Python,
		Graph:      g,
	}, nil
}

// WriteFile writes a snapshot to a JSON file with 0644 permissions.
func WriteFile(s *Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// ReadFile reads a snapshot from a JSON file.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
