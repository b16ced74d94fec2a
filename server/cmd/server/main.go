package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/RekaCodes/anscombes-quartet/server/internal/api"
	"github.com/RekaCodes/anscombes-quartet/server/internal/config"
	"github.com/RekaCodes/anscombes-quartet/server/internal/metrics"
	"github.com/RekaCodes/anscombes-quartet/server/internal/pages"
	"github.com/RekaCodes/anscombes-quartet/server/internal/store"
	"github.com/RekaCodes/anscombes-quartet/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config/server.yaml", "path to config file")
	dataPath := flag.String("data", "", "override data.csv_path")
	addr := flag.String("addr", "", "override the listen address, e.g. :9090")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("quartet-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.Data.CSVPath = *dataPath
	}
	listen, err := listenAddr(cfg, *addr)
	if err != nil {
		slog.Error("invalid -addr", "addr", *addr, "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"listen", listen,
		"csv_path", cfg.Data.CSVPath,
		"notebook_path", cfg.Data.NotebookPath,
		"watch", cfg.Data.WatchEnabled(),
		"broadcast_interval", cfg.Server.BroadcastInterval,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()

	// Dataset store. A missing or malformed file is not fatal: pages show the
	// error until the file is fixed.
	st := store.New(cfg.Data.CSVPath)

	// WebSocket hub: pushes the summary on every reload and as a keep-alive.
	hub := ws.New(st, cfg.Server.BroadcastInterval, m.WSClients)
	st.OnReload(func(s *store.Snapshot) {
		m.ObserveLoad(s.Version, s.Err)
		hub.Notify()
	})
	st.Reload()
	go hub.Run(ctx)

	if cfg.Data.WatchEnabled() {
		go func() {
			if err := st.Run(ctx); err != nil {
				slog.Error("dataset watcher stopped", "err", err)
			}
		}()
	}

	pageHandler, err := pages.New(st, cfg.Data.NotebookPath, cfg.Charts, m)
	if err != nil {
		slog.Error("failed to build pages", "err", err)
		os.Exit(1)
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", m.Handler())
	httpMux.Handle("/", pageHandler)

	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "addr", listen)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("quartet-server shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

// listenAddr returns the address to bind: override as given (host kept) when
// set, otherwise all interfaces on server.http_port.
func listenAddr(cfg *config.Config, override string) (string, error) {
	if override == "" {
		return fmt.Sprintf(":%d", cfg.Server.HTTPPort), nil
	}
	_, port, err := net.SplitHostPort(override)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return "", fmt.Errorf("port %q: %w", port, err)
	}
	if n <= 0 || n > 65535 {
		return "", fmt.Errorf("port %d is out of range [1, 65535]", n)
	}
	cfg.Server.HTTPPort = n
	return override, nil
}
