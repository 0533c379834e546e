//go:build cgo

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/appengine-ltd/virtual-herbarium/internal/gui"
)

func runTour(parent context.Context, e *env) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := gui.AppConfig{
		Width:         int32(e.cfg.Window.Width),
		Height:        int32(e.cfg.Window.Height),
		FPS:           int32(e.cfg.Window.FPS),
		Font:          e.cfg.Window.Font,
		Coordinator:   e.coord,
		Variants:      e.variants,
		Layout:        e.cfg.SceneLayout(),
		AnimationStep: e.cfg.Animation.Step,
		Logger:        e.logger,
		Metrics:       e.metrics,
	}

	w, err := e.watcher()
	if err != nil {
		e.logger.Warn("dataset watch disabled", "error", err)
	}
	if w != nil {
		defer w.Close()
		w.Start(ctx)
		cfg.Changes = w.Changes()
	}

	err = gui.NewApp(cfg).Run(ctx)
	stop()
	e.coord.Wait()
	return err
}
