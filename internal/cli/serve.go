package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/loadcurve/internal/demo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the CPU-bound demo target server",
	Long: `Run a small HTTP server whose /compute endpoint does real CPU work
(an iterative Fibonacci), so load generators pointed at it produce
latency curves with genuine concurrency degradation.

Endpoints:
  /compute?size=N   compute F(N), N in [0,90]
  /health           liveness probe
  /stats            latency percentiles of served requests

Example:
  loadcurve serve --port 8081
  bombardier -c 25 -n 4000 -o json http://localhost:8081/compute?size=30`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")

	srv := demo.New(fmt.Sprintf(":%d", port))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8081, "Port to listen on")
}
