package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/boardreviews/internal/api"
	"github.com/HerbHall/boardreviews/internal/schema"
	"github.com/HerbHall/boardreviews/internal/server"
	"github.com/HerbHall/boardreviews/internal/services"
	"github.com/HerbHall/boardreviews/internal/store"
	"github.com/HerbHall/boardreviews/internal/version"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("BoardReviews server starting", zap.String("version", version.Short()))

	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := schema.Apply(ctx, s); err != nil {
		return err
	}

	repos := services.NewRepositories(store.NewConn(s))
	addr := net.JoinHostPort(a.cfg.GetString("server.host"), a.cfg.GetString("server.port"))
	srv := server.New(server.Options{
		Addr:         addr,
		ReadTimeout:  a.cfg.GetDuration("server.read_timeout"),
		WriteTimeout: a.cfg.GetDuration("server.write_timeout"),
		RateLimit:    a.cfg.GetFloat64("server.rate_limit.rps"),
		Burst:        a.cfg.GetInt("server.rate_limit.burst"),
	}, a.logger, api.NewHandler(repos, a.logger))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	a.logger.Info("BoardReviews server ready", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.logger.Info("BoardReviews server stopped")
	return nil
}
