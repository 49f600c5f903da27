package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// spinnerFrames are braille dots, matching the look of the rest of the
// terminal output.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on stderr while a slow step runs, typically
// a pipdeptree invocation or an rsvg-convert export. It winds down on its own
// when the surrounding context is cancelled, leaving the line clear for the
// interrupt message.
type Spinner struct {
	message  string
	out      io.Writer
	interval time.Duration

	parent   context.Context
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	started  bool
	stopped  bool
}

// newSpinner creates a spinner that runs until stopped.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner tied to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:  message,
		out:      os.Stderr,
		interval: 80 * time.Millisecond,
		parent:   ctx,
		ctx:      sctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.cancel()
	if s.started {
		<-s.finished
	}
}

// Cancelled reports whether the surrounding context ended the spinner, as
// opposed to an explicit Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

// clear wipes the spinner line. Only the animation goroutine writes to out,
// so no locking is needed.
func (s *Spinner) clear() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
