package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/router"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

const shutdownTimeout = 5 * time.Second

type ServeOptions struct {
	*RootOptions
	Port    string
	Offline bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, display push and background sync",
		Long: `Start the terminal's HTTP API and websocket push for kitchen and
customer displays.

Alongside the API it watches the shared change log for writes from other
terminals, probes connectivity and flushes the offline queue when
AUTO_SYNC_INTERVAL is set.

Example:
  pos-ledger serve --port 8080
  DB_DRIVER=postgres DB_DSN=... pos-ledger serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "start with connectivity switched off")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	if opts.Offline {
		cfg.StartOffline = true
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := OpenRuntime(ctx, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start", err)
	}
	defer rt.Close()
	svc := rt.Services

	monitor := services.NewChangeMonitor(rt.Store, svc.Bus)
	monitor.Interval = cfg.ChangePollInterval
	if err := monitor.Start(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read change log", err)
	}
	defer monitor.Stop()

	hub := kds.NewHub()
	defer hub.Close()
	go hub.Run(ctx, svc.Bus, cfg.LedgerPollInterval, cfg.QueuePollInterval)

	if cfg.ConnectivityProbeInterval > 0 {
		go svc.Connectivity.Probe(ctx, cfg.ConnectivityProbeInterval, rt.Store.Ping)
	}
	if cfg.AutoSyncInterval > 0 {
		go svc.Sync.Run(ctx, cfg.AutoSyncInterval)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := router.SetupRouter(svc, hub, router.Options{
		RateLimitRPS: cfg.RateLimitRPS,
		AllowOrigin:  cfg.AllowOrigin,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	utils.InfoLogger.WithField("instance", cfg.InstanceID).Infof("Listening on port %s", cfg.Port)
	return serveHTTP(ctx, srv)
}

// serveHTTP runs srv until ctx is done, then shuts it down gracefully.
func serveHTTP(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		utils.InfoLogger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
