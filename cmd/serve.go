package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/acourtel/stackgraph/internal/collector"
	"github.com/acourtel/stackgraph/internal/config"
	"github.com/acourtel/stackgraph/internal/server"
	"github.com/acourtel/stackgraph/internal/ui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the graph to an interactive rendering host",
	Long: `Collect the inventory snapshot, build the graph, and serve it over HTTP:
the graph as JSON or D2, pointer events in via POST or WebSocket, render
instructions back out after every highlight change.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'stackgraph init' to create a config file"))
		return err
	}

	fmt.Println(ui.Bold("Collecting inventory snapshot..."))

	snap, results, err := collector.Collect(cfg)
	for _, r := range results {
		if r.Skipped {
			ui.CollectorSkipped(r.Name)
		} else if r.Err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError(r.Name+" failed", r.Err.Error(), ""))
		} else {
			ui.CollectorDone(r.Name, r.Detail)
		}
	}
	if err != nil {
		return err
	}

	srv, err := server.New(cfg.Layout)
	if err != nil {
		return err
	}
	if err := srv.SetSnapshot(snap); err != nil {
		return err
	}

	addr := cfg.Serve.Addr
	if env := os.Getenv("STACKGRAPH_ADDR"); env != "" {
		addr = env
	}
	if serveAddr != "" {
		addr = serveAddr
	}
	if addr == "" {
		addr = ":8080"
	}

	g := srv.Graph()
	ui.Success(fmt.Sprintf("Serving %d nodes, %d edges on %s", len(g.Nodes), len(g.Edges), addr))

	return http.ListenAndServe(addr, srv.Router())
}
