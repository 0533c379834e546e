// Package gui is the interactive 3D tour: a raylib window showing the
// composed scene with a search box, an info panel and recovery views.
package gui

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/virtual-herbarium/internal/loader"
	"github.com/appengine-ltd/virtual-herbarium/internal/metrics"
	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

type AppConfig struct {
	Title  string
	Width  int32
	Height int32
	FPS    int32
	// Font is an optional TTF path tried before the bundled faces.
	Font string

	Coordinator *loader.Coordinator
	// Changes, when set, triggers a reload on every signal.
	Changes       <-chan struct{}
	Variants      *variant.Table
	Layout        scene.Placer
	AnimationStep float64

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	if cfg.Title == "" {
		cfg.Title = "Virtual Herbarium"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 800
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	return &App{cfg: cfg}
}

// Run opens the window and blocks until it is closed or ctx ends. The first
// dataset load is requested before the first frame.
func (a *App) Run(ctx context.Context) error {
	ui := newTourUI(ctx, a.cfg)
	return ui.Run()
}

func (ui *tourUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, ui.cfg.Title)
	rl.SetExitKey(0)
	rl.SetTargetFPS(ui.cfg.FPS)
	openFontBook(ui.cfg.Font, ui.logger)
	defer func() {
		closeFontBook()
		rl.CloseWindow()
	}()

	ui.coord.Request(ui.ctx)
	ui.lastTick = time.Now()

	for !rl.WindowShouldClose() {
		if ui.ctx.Err() != nil {
			break
		}
		now := time.Now()
		delta := now.Sub(ui.lastTick)
		if delta < 0 {
			delta = 0
		}
		ui.lastTick = now

		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())

		ui.update(delta)

		rl.BeginDrawing()
		rl.ClearBackground(AppTheme.Background)
		ui.draw()
		rl.EndDrawing()
	}
	ui.logger.Info("tour closed")
	return nil
}
