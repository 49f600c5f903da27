package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipgraph/pkg/render"
)

const defaultAddr = "127.0.0.1:8639"

// indexHTML is the minimal page wrapping the rendered graph.
const indexHTML = `<!DOCTYPE html>
<html>
<head><title>pipgraph</title>
<style>body { margin: 0; background: #f7f7f7; } img { max-width: 100%; display: block; margin: 0 auto; }</style>
</head>
<body><img src="/graph.svg" alt="dependency graph"></body>
</html>
`

// serveCommand creates the serve command: render on demand and serve the
// graph over HTTP so it can be viewed in a browser.
func (c *CLI) serveCommand() *cobra.Command {
	var capOpts captureOpts
	var renOpts renderOpts
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered dependency graph over HTTP",
		Long: `Serve the dependency graph at an HTTP address for browser viewing.

The graph is re-captured per request within the snapshot cache's TTL, so a
refreshed environment shows up without restarting the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateRankDir(renOpts.rankdir); err != nil {
				return err
			}
			return c.serve(cmd.Context(), addr, &capOpts, &renOpts)
		},
	}

	addCaptureFlags(cmd, &capOpts)
	cmd.Flags().StringVar(&renOpts.rankdir, "rankdir", "", "layout direction: TB (default), LR, BT, RL")
	cmd.Flags().StringVar(&renOpts.labels, "labels", "", "node labels: full (default), name")
	cmd.Flags().BoolVar(&renOpts.requires, "requires", false, "annotate edges with version constraints")
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled.
func (c *CLI) serve(ctx context.Context, addr string, capOpts *captureOpts, renOpts *renderOpts) error {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHTML)
	})

	r.Get("/graph.svg", func(w http.ResponseWriter, req *http.Request) {
		svg, err := c.renderCurrent(req.Context(), capOpts, renOpts)
		if err != nil {
			c.Logger.Errorf("Render failed: %v", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	})

	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.Logger.Infof("Serving dependency graph at http://%s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// renderCurrent captures the environment (through the snapshot cache) and
// renders the SVG for it.
func (c *CLI) renderCurrent(ctx context.Context, capOpts *captureOpts, renOpts *renderOpts) ([]byte, error) {
	snap, cached, err := c.capture(ctx, capOpts)
	if err != nil {
		return nil, err
	}
	c.Logger.Debugf("Rendering %d packages (cached=%v)", snap.Graph.NodeCount(), cached)

	dot := render.ToDOT(snap.Graph, renOpts.dotOptions())
	return render.SVG(ctx, dot)
}
