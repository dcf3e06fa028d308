package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubeblast/internal/metrics"
	"github.com/vovakirdan/cubeblast/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Cube Blast SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the game picker menu and its
own board. Scores and runs are stored per server, so all users share one
leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.cubeblast/host_key

With --metrics, engine events (blasts, cleared tiles, shuffles), finished
runs and open sessions are served in the Prometheus format at /metrics.

Examples:
  cubeblast serve
  cubeblast serve --ssh :2222 --metrics :9090
  cubeblast serve --host-key ./host_key --db ./cubeblast.db

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("parsing log level: %v", err)
	}

	collector := metrics.New()
	if err := configureGames(logger, collector); err != nil {
		fail("loading config: %v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if flagMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		srv := &http.Server{Addr: flagMetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("serving metrics", "address", flagMetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "err", err)
			}
		}()
		defer srv.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, tui.Env{
		Store:   store,
		Metrics: collector,
		Logger:  logger.WithPrefix("cubeblast-ssh"),
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Cube Blast SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("serving: %v", err)
	}
}
