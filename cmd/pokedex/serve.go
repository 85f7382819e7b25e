package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SanteonNL/pokedex/cmd/pokedex/api"
	"github.com/SanteonNL/pokedex/cmd/pokedex/cache"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long:  "Start loading the catalog in the background and serve queries over HTTP until interrupted.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, argv []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	a.catalog.LoadAsync(ctx, a.source)

	resultCache := cache.New(a.cfg.Cache, a.log)
	defer resultCache.Stop()

	router := api.NewPokedexRouter(a.catalog, resultCache, a.cfg.PageSize, a.log)
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.Addr).Msg("Server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
