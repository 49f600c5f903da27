package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/pipgraph/pkg/depgraph"
)

func testGraph(t *testing.T) *depgraph.Graph {
	t.Helper()
	g := depgraph.New()
	if err := g.AddNode(depgraph.Node{ID: "requests", Name: "requests", Version: "2.31.0"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(depgraph.Node{ID: "urllib3", Name: "urllib3", Version: "2.0.7"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(depgraph.Edge{From: "requests", To: "urllib3", Requires: "<3,>=1.21.1"}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	if !strings.Contains(dot, "digraph dependencies") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, "rankdir=TB") {
		t.Error("ToDOT() output missing default rankdir")
	}
	if !strings.Contains(dot, `"requests" [label="requests\n2.31.0"]`) {
		t.Errorf("ToDOT() output missing labeled node:\n%s", dot)
	}
	if !strings.Contains(dot, `"requests" -> "urllib3"`) {
		t.Error("ToDOT() output missing edge")
	}
}

func TestToDOT_RankDir(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{RankDir: RankLR})
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() should honor RankDir")
	}
}

func TestToDOT_NameLabels(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Labels: "name"})
	if strings.Contains(dot, "2.31.0") {
		t.Error("ToDOT() name-only labels should omit versions")
	}
	if !strings.Contains(dot, `label="requests"`) {
		t.Error("ToDOT() name-only labels should keep names")
	}
}

func TestToDOT_Requires(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Requires: true})
	if !strings.Contains(dot, `label="<3,>=1.21.1"`) {
		t.Errorf("ToDOT() should annotate edges with constraints:\n%s", dot)
	}
}

func TestToDOT_EmptyGraph(t *testing.T) {
	dot := ToDOT(depgraph.New(), Options{})
	if !strings.Contains(dot, "digraph dependencies") || !strings.Contains(dot, "}") {
		t.Errorf("ToDOT() should emit a valid empty digraph:\n%s", dot)
	}
}

func TestValidateRankDir(t *testing.T) {
	for _, dir := range []string{"", "TB", "LR", "BT", "RL"} {
		if err := ValidateRankDir(dir); err != nil {
			t.Errorf("ValidateRankDir(%q) error: %v", dir, err)
		}
	}
	if err := ValidateRankDir("diagonal"); err == nil {
		t.Error("ValidateRankDir should reject unknown directions")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestSVG(t *testing.T) {
	svg, err := SVG(context.Background(), `digraph G { a -> b; }`)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("SVG() output missing <svg> tag")
	}
}

func TestSVG_InvalidDOT(t *testing.T) {
	if _, err := SVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("SVG() should return error for invalid DOT")
	}
}
