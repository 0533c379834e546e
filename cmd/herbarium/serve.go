package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/appengine-ltd/virtual-herbarium/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog, composed scenes and snapshots over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, e)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

func serve(ctx context.Context, e *env) error {
	reload := make(chan struct{}, 1)
	handler := server.NewHandler(server.Deps{
		Store:         e.coord.Store(),
		Variants:      e.variants,
		Layout:        e.cfg.SceneLayout(),
		AnimationStep: e.cfg.Animation.Step,
		Logger:        e.logger,
		Metrics:       e.metrics,
		Gatherer:      e.registry,
		Reload: func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		},
	})
	srv := &http.Server{
		Addr:              e.cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	w, err := e.watcher()
	if err != nil {
		e.logger.Warn("dataset watch disabled", "error", err)
	}
	var changes <-chan struct{}
	if w != nil {
		defer w.Close()
		w.Start(ctx)
		changes = w.Changes()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	// Loads are committed from this goroutine only.
	g.Go(func() error {
		if _, err := e.coord.Sync(gctx); err != nil {
			return nil
		}
		for {
			select {
			case <-gctx.Done():
				return nil
			case _, ok := <-changes:
				if !ok {
					changes = nil
					continue
				}
				e.logger.Info("dataset changed on disk, reloading")
			case <-reload:
				e.logger.Info("reload requested")
			}
			if _, err := e.coord.Sync(gctx); err != nil {
				return nil
			}
		}
	})

	err = g.Wait()
	e.coord.Wait()
	e.logger.Info("http server stopped")
	return err
}
