// Package pipdeptree acquires dependency trees by shelling out to the
// pipdeptree tool (https://pypi.org/project/pipdeptree/) with JSON output.
//
// Two invocation modes are supported: running the pipdeptree executable from
// PATH, or running it as a module of a specific interpreter
// (python -m pipdeptree) so a virtualenv can be inspected without activating
// it. The tool's stderr is captured and included in failures.
package pipdeptree

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/pipgraph/pkg/errors"
)

// DefaultTool is the executable used when no interpreter is specified.
const DefaultTool = "pipdeptree"

// Options selects which part of the environment pipdeptree reports.
type Options struct {
	// Python is the interpreter whose environment to inspect. When set,
	// pipdeptree runs as `<python> -m pipdeptree`; when empty, the
	// pipdeptree executable on PATH is used.
	Python string

	// Flat requests the one-level --json format instead of --json-tree.
	Flat bool

	// LocalOnly excludes globally-installed packages when inside a virtualenv.
	LocalOnly bool

	// UserOnly only reports packages installed in the user site.
	UserOnly bool

	// Packages restricts output to these packages and their subtrees (-p).
	Packages []string

	// Exclude drops these packages from the output (-e).
	Exclude []string
}

// Args returns the pipdeptree argument list for the options.
// The JSON flag always comes first so output-shape detection stays simple.
func (o Options) Args() []string {
	args := []string{"--json-tree"}
	if o.Flat {
		args[0] = "--json"
	}
	if o.LocalOnly {
		args = append(args, "--local-only")
	}
	if o.UserOnly {
		args = append(args, "--user-only")
	}
	if len(o.Packages) > 0 {
		args = append(args, "-p", strings.Join(o.Packages, ","))
	}
	if len(o.Exclude) > 0 {
		args = append(args, "-e", strings.Join(o.Exclude, ","))
	}
	return args
}

// Runner executes pipdeptree and decodes its output.
type Runner struct {
	tool string
}

// NewRunner creates a runner using the default pipdeptree executable.
func NewRunner() *Runner {
	return &Runner{tool: DefaultTool}
}

// Run executes pipdeptree and returns its raw JSON output.
func (r *Runner) Run(ctx context.Context, opts Options) ([]byte, error) {
	name, args := r.command(opts)

	if _, err := exec.LookPath(name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolNotFound, err,
			"%s not found. Install with:\n  pip install pipdeptree", name)
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeToolFailed, err,
			"%s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}

// Tree executes pipdeptree and decodes the dependency tree.
func (r *Runner) Tree(ctx context.Context, opts Options) ([]*Node, error) {
	data, err := r.Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	nodes, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOutput, err, "decode pipdeptree output")
	}
	return nodes, nil
}

// command resolves the executable and argument list for the options.
func (r *Runner) command(opts Options) (string, []string) {
	if opts.Python != "" {
		return opts.Python, append([]string{"-m", "pipdeptree"}, opts.Args()...)
	}
	return r.tool, opts.Args()
}
