package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/api"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

var (
	flagHTTPAddr   string
	flagSessionTTL time.Duration
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API with WebSocket spectators",
	Long: `Start an HTTP server that hosts boards for remote drivers.

Clients create a session, then shift it with
POST /api/sessions/{id}/shift {"direction":"left"}.
Spectators connect to /ws?session={id} and receive every accepted move.
Finished games are written to the results database.

Examples:
  t2048 api
  t2048 api --http :9000
  t2048 api --session-ttl 30m`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (host:port)")
	apiCmd.Flags().DurationVar(&flagSessionTTL, "session-ttl", time.Hour, "Drop sessions idle for longer than this")
}

// newManager builds a session manager that records finished games in store.
func newManager(store *storage.Store) *session.Manager {
	opts := []session.Option{
		session.WithLogger(logger.WithPrefix("t2048-sessions")),
		session.WithFourProbability(appConfig.Game.FourProbability),
	}
	if store != nil {
		opts = append(opts, session.WithResultSaver(store))
	}
	return session.NewManager(opts...)
}

func runAPI(_ *cobra.Command, _ []string) error {
	addr := appConfig.HTTP.Address
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be saved", "error", err)
	} else {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := newManager(store)
	hub := websocket.NewHub(logger.WithPrefix("t2048-ws"))
	go hub.Run(ctx)

	var results api.ResultLister
	if store != nil {
		results = store
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(mgr, results, hub, logger.WithPrefix("t2048-http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go cleanupSessions(ctx, mgr, flagSessionTTL)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cleanupSessions drops idle sessions until ctx is done.
func cleanupSessions(ctx context.Context, mgr *session.Manager, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(max(min(ttl/2, 5*time.Minute), time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mgr.CleanupExpiredSessions(ttl); n > 0 {
				logger.Debug("dropped idle sessions", "count", n)
			}
		}
	}
}
