package cli

import (
	"testing"

	"github.com/matzehuels/pipgraph/pkg/errors"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		format string
		base   string
		single bool
		output string
		want   string
	}{
		{"derived from base", "svg", "deps", false, "", "deps.svg"},
		{"single with explicit output", "svg", "deps", true, "out.svg", "out.svg"},
		{"multiple ignore explicit output", "png", "deps", false, "out.svg", "deps.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.format, tt.base, tt.single, tt.output); got != tt.want {
				t.Errorf("outputPath(%q, %q, %v, %q) = %q, want %q",
					tt.format, tt.base, tt.single, tt.output, got, tt.want)
			}
		})
	}
}

func TestCheckNotInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		formats []string
		output  string
		wantErr bool
	}{
		{"json format clobbers input", "graph.json", []string{"json"}, "", true},
		{"json among multiple clobbers input", "graph.json", []string{"svg", "json"}, "", true},
		{"explicit output clobbers input", "graph.json", []string{"json"}, "graph.json", true},
		{"relative path variants match", "./graph.json", []string{"json"}, "graph.json", true},
		{"image formats leave input alone", "graph.json", []string{"svg", "png"}, "", false},
		{"explicit output elsewhere", "graph.json", []string{"json"}, "copy.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := basePath(tt.output, tt.input)
			err := checkNotInput(tt.input, tt.formats, base, tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkNotInput(%q, %v, %q, %q) error = %v, wantErr %v",
					tt.input, tt.formats, base, tt.output, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}
