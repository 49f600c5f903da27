package render

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/matzehuels/pipgraph/pkg/errors"
)

// PNG and PDF export goes through rsvg-convert rather than the graphviz
// rasterizer, whose text output is blurry at small font sizes.

// ToPDF converts rendered SVG to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts rendered SVG to PNG at the given scale factor. A scale of
// 2.0 doubles the resolution for high-DPI displays.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert pipes the SVG through rsvg-convert and returns its stdout.
func rsvgConvert(svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeToolNotFound,
			"%s export needs librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command("rsvg-convert", append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolFailed, err, "rsvg-convert: %s", stderr.String())
	}
	return out.Bytes(), nil
}
