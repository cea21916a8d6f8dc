package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own menu session. Results are stored
per server, so all users share the same scoreboard.

Host key handling:
  - Uses ssh.host_key from the config or --host-key
  - The key is generated on first start if it does not exist

Examples:
  t2048 serve                           # Listen on ssh.address from config
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --idle-timeout 30m

Users can connect with:
  ssh localhost -p 2048`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (e.g. 30m)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		Address:     appConfig.SSH.Address,
		HostKeyPath: appConfig.SSH.HostKey,
		IdleTimeout: appConfig.SSH.IdleTimeout,
		TickRate:    appConfig.TUI.TickRate,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be saved", "error", err)
	} else {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("t2048-ssh"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("press Ctrl+C to stop", "connect", "ssh localhost -p "+port(cfg.Address))
	return server.ListenAndServe(ctx)
}

// port extracts the port from a listen address for the connect hint.
func port(addr string) string {
	_, p, err := net.SplitHostPort(addr)
	if err != nil || p == "" {
		return addr
	}
	return p
}
