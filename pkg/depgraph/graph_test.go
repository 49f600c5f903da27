package depgraph

import (
	"errors"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()

	if err := g.AddNode(Node{ID: "requests", Name: "requests", Version: "2.31.0"}); err != nil {
		t.Fatalf("AddNode error: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}

	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID error = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "requests"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate ID error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a", Name: "a"})
	_ = g.AddNode(Node{ID: "b", Name: "b"})

	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge error: %v", err)
	}

	// Duplicate edges are silently ignored
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("duplicate AddEdge error: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}

	if err := g.AddEdge(Edge{From: "x", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("unknown source error = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("unknown target error = %v, want ErrUnknownTargetNode", err)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c", "a", "b"} {
		_ = g.AddNode(Node{ID: id, Name: id})
	}

	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.ID)
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Nodes() order = %v, want %v", got, want)
		}
	}
}

func TestRootsAndChildren(t *testing.T) {
	g := New()
	for _, id := range []string{"app", "lib", "util"} {
		_ = g.AddNode(Node{ID: id, Name: id})
	}
	_ = g.AddEdge(Edge{From: "app", To: "lib"})
	_ = g.AddEdge(Edge{From: "app", To: "util"})
	_ = g.AddEdge(Edge{From: "lib", To: "util"})

	roots := g.Roots()
	if len(roots) != 1 || roots[0].ID != "app" {
		t.Errorf("Roots() = %v, want [app]", roots)
	}

	children := g.Children("app")
	if len(children) != 2 || children[0] != "lib" || children[1] != "util" {
		t.Errorf("Children(app) = %v, want [lib util]", children)
	}
	if got := g.Children("util"); len(got) != 0 {
		t.Errorf("Children(util) = %v, want empty", got)
	}
}

func TestNodeLabel(t *testing.T) {
	n := Node{ID: "flask", Name: "Flask", Version: "3.0.0"}
	if got := n.Label(); got != "Flask\n3.0.0" {
		t.Errorf("Label() = %q, want %q", got, "Flask\n3.0.0")
	}

	bare := Node{ID: "flask", Name: "Flask"}
	if got := bare.Label(); got != "Flask" {
		t.Errorf("Label() without version = %q, want %q", got, "Flask")
	}
}
