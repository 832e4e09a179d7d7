package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilmaurya2006/website-security-scanner/internal/api"
	"github.com/sahilmaurya2006/website-security-scanner/internal/checker"
	"github.com/sahilmaurya2006/website-security-scanner/internal/history"
	"github.com/sahilmaurya2006/website-security-scanner/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scanner as a REST API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", app.Config.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", app.Config.Addr, err)
		}
		return runServer(ctx, ln, app.Config, app.Logger, cmd.OutOrStdout())
	},
}

func init() {
	addServeFlags(serveCmd.Flags())
}

func addServeFlags(flags *pflag.FlagSet) {
	flags.String("addr", ":5000", "Address for the API server")
	flags.Int("history-capacity", 50, "Number of scans kept in memory")
	flags.Duration("shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
	flags.StringSlice("cors-origins", []string{}, "Allowed CORS origins (empty = allow all)")
	flags.Int("rate-limit", 0, "Rate limit per client IP (requests/second, 0 = disabled)")
	flags.Int("rate-burst", 20, "Rate limit burst size")
	flags.Bool("trust-proxy", false, "Rate limit on X-Forwarded-For (only behind a proxy that overwrites it)")
}

// newAPIServer wires the scanner, history store and renderer behind the
// HTTP API.
func newAPIServer(cfg *ServiceConfig, logger *zap.Logger) *api.Server {
	store := history.NewStore(cfg.HistoryCapacity)
	logger.Debug("history_store_ready", zap.Int("capacity", store.Capacity()))

	return api.NewServer(api.Config{
		Scanner:     checker.NewScanner(logger.Named("scanner")),
		History:     store,
		Renderer:    report.NewPDFRenderer(),
		Logger:      logger.Named("api"),
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		TrustProxy:  cfg.TrustProxy,
	})
}

// runServer serves the API on ln until ctx is cancelled, then drains
// in-flight requests for up to cfg.ShutdownTimeout.
func runServer(ctx context.Context, ln net.Listener, cfg *ServiceConfig, logger *zap.Logger, out io.Writer) error {
	handler := newAPIServer(cfg, logger)
	defer handler.Close()

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// No WriteTimeout: /history/stream is long-lived and scans are
		// bounded by their own fetch deadlines.
		IdleTimeout: 120 * time.Second,
		ErrorLog:    zap.NewStdLog(logger.Named("http")),
	}
	httpServer.RegisterOnShutdown(handler.Close)

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(out, "%s Security scanner API listening on %s\n", colorInfo("→"), ln.Addr())
		fmt.Fprintf(out, "%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
		logger.Info("server_started",
			zap.String("addr", ln.Addr().String()),
			zap.Int("history_capacity", cfg.HistoryCapacity),
			zap.Int("rate_limit", cfg.RateLimit),
		)
		serverErrors <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintf(out, "\n%s Shutting down...\n", colorInfo("→"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		if closeErr := httpServer.Close(); closeErr != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
		}
		return fmt.Errorf("failed to gracefully shutdown server: %w", err)
	}

	fmt.Fprintf(out, "%s Server shutdown complete\n", colorSuccess("✓"))
	logger.Info("server_stopped")
	return nil
}
