package pipdeptree

import (
	"strings"
	"testing"
)

// flatJSON is pipdeptree --json output: every package at top level,
// package fields wrapped in a "package" object, one level of dependencies.
const flatJSON = `[
  {
    "package": {"key": "requests", "package_name": "requests", "installed_version": "2.31.0"},
    "dependencies": [
      {"key": "certifi", "package_name": "certifi", "installed_version": "2023.7.22", "required_version": ">=2017.4.17"},
      {"key": "urllib3", "package_name": "urllib3", "installed_version": "2.0.7", "required_version": "<3,>=1.21.1"}
    ]
  },
  {
    "package": {"key": "urllib3", "package_name": "urllib3", "installed_version": "2.0.7"},
    "dependencies": []
  }
]`

// treeJSON is pipdeptree --json-tree output: package fields inlined,
// dependencies fully nested.
const treeJSON = `[
  {
    "key": "requests",
    "package_name": "requests",
    "installed_version": "2.31.0",
    "dependencies": [
      {
        "key": "urllib3",
        "package_name": "urllib3",
        "installed_version": "2.0.7",
        "required_version": "<3,>=1.21.1",
        "dependencies": []
      }
    ]
  }
]`

func TestDecodeFlat(t *testing.T) {
	nodes, err := Decode([]byte(flatJSON))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(nodes))
	}

	req := nodes[0]
	if req.Name != "requests" || req.Version != "2.31.0" {
		t.Errorf("nodes[0] = %s %s, want requests 2.31.0", req.Name, req.Version)
	}
	if len(req.Dependencies) != 2 {
		t.Fatalf("requests dependencies = %d, want 2", len(req.Dependencies))
	}
	if req.Dependencies[1].RequiredVersion != "<3,>=1.21.1" {
		t.Errorf("urllib3 required version = %q", req.Dependencies[1].RequiredVersion)
	}
}

func TestDecodeTree(t *testing.T) {
	nodes, err := Decode([]byte(treeJSON))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}

	dep := nodes[0].Dependencies[0]
	if dep.Name != "urllib3" || dep.Version != "2.0.7" {
		t.Errorf("nested dep = %s %s, want urllib3 2.0.7", dep.Name, dep.Version)
	}
}

func TestDecodeEmpty(t *testing.T) {
	nodes, err := Decode([]byte("[]"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("len(nodes) = %d, want 0", len(nodes))
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("Decode should fail on non-JSON input")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"requests", "requests"},
		{"Typing_Extensions", "typing-extensions"},
		{"typing.extensions", "typing-extensions"},
		{"ruamel.yaml", "ruamel-yaml"},
		{"zope--interface", "zope-interface"},
		{"Flask", "flask"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptionsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"default", Options{}, "--json-tree"},
		{"flat", Options{Flat: true}, "--json"},
		{"local only", Options{LocalOnly: true}, "--json-tree --local-only"},
		{"user only", Options{UserOnly: true}, "--json-tree --user-only"},
		{"packages", Options{Packages: []string{"flask", "requests"}}, "--json-tree -p flask,requests"},
		{"exclude", Options{Exclude: []string{"pip", "setuptools"}}, "--json-tree -e pip,setuptools"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(tt.opts.Args(), " "); got != tt.want {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunnerCommand(t *testing.T) {
	r := NewRunner()

	name, args := r.command(Options{})
	if name != "pipdeptree" {
		t.Errorf("default tool = %q, want pipdeptree", name)
	}
	if args[0] != "--json-tree" {
		t.Errorf("args[0] = %q, want --json-tree", args[0])
	}

	name, args = r.command(Options{Python: "/opt/venv/bin/python"})
	if name != "/opt/venv/bin/python" {
		t.Errorf("interpreter = %q, want /opt/venv/bin/python", name)
	}
	if args[0] != "-m" || args[1] != "pipdeptree" {
		t.Errorf("interpreter mode args = %v, want -m pipdeptree prefix", args[:2])
	}
}
