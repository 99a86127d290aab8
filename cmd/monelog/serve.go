package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/monelog/internal/backend"
	"github.com/example/monelog/internal/config"
	apihttp "github.com/example/monelog/internal/http"
	"github.com/example/monelog/internal/handlers"
	"github.com/example/monelog/internal/logging"
	"github.com/example/monelog/internal/rate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logging.New(os.Stderr, cfg.LogLevel)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
	cmd.Flags().String("port", "8080", "listen port")
	cmd.Flags().String("admin-token", "", "enables POST /admin/sessions when set")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	h, err := backend.Init(initCtx, backend.FromConfig(cfg), log)
	if err != nil {
		return err
	}
	defer func() {
		_ = h.Close(context.Background())
	}()

	lm := rate.NewLimiterMap(cfg.RateLimitRPM, cfg.RateLimitRPM, 5*time.Minute)
	defer lm.Stop()

	deps := apihttp.Deps{
		Total: handlers.NewTotalHandler(handlers.TotalDeps{
			MaxValues: cfg.MaxValues,
			Currency:  cfg.Currency,
			Log:       log,
		}),
		Limiter:     lm,
		Sessions:    h.Auth,
		Health:      h.Store,
		AuthTimeout: cfg.RequestTimeout,
		Log:         log,
	}
	if cfg.AdminToken != "" {
		deps.Admin = handlers.NewAdminHandler(h.Auth, cfg.AdminToken, log)
	}

	srv := &http.Server{
		Addr:         ":" + sanitizePort(cfg.Port),
		Handler:      apihttp.NewRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("event", "listen").Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Str("event", "shutdown").Msg("shutting down...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	return srv.Shutdown(shCtx)
}
