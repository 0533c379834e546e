package gui

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/loader"
	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
)

const suggestionLimit = 3

type view int

const (
	viewLoading view = iota
	viewFailed
	viewEmpty
	viewNoMatches
	viewScene
	viewFault
)

// selectView decides what the tour shows. A reload keeps the previous scene
// on screen until it completes.
func selectView(state catalog.State, faulted bool, records, filtered int) view {
	switch {
	case faulted:
		return viewFault
	case state == catalog.StateLoading && records == 0:
		return viewLoading
	case state == catalog.StateFailed:
		return viewFailed
	case records == 0:
		return viewEmpty
	case filtered == 0:
		return viewNoMatches
	default:
		return viewScene
	}
}

type tourUI struct {
	cfg    AppConfig
	ctx    context.Context
	logger *slog.Logger

	coord   *loader.Coordinator
	changes <-chan struct{}

	composer *scene.Composer
	boundary *scene.Boundary
	frame    scene.Frame
	version  uint64

	orbit    orbit
	query    string
	selected *catalog.PlantRecord
	hovered  int
	status   string

	width    int32
	height   int32
	lastTick time.Time
}

func newTourUI(ctx context.Context, cfg AppConfig) *tourUI {
	ui := &tourUI{
		cfg:      cfg,
		ctx:      ctx,
		logger:   cfg.Logger,
		coord:    cfg.Coordinator,
		changes:  cfg.Changes,
		orbit:    newOrbit(),
		hovered:  -1,
		width:    cfg.Width,
		height:   cfg.Height,
		lastTick: time.Now(),
	}
	if ui.logger == nil {
		ui.logger = slog.Default()
	}
	ui.mount()
	return ui
}

// mount creates a fresh composer and boundary over the current catalog,
// keeping the search text.
func (ui *tourUI) mount() {
	ui.composer = scene.NewComposer(scene.Options{
		Variants: ui.cfg.Variants,
		Layout:   ui.cfg.Layout,
		Animator: scene.NewAnimator(ui.cfg.AnimationStep),
		Logger:   ui.logger,
		Metrics:  ui.cfg.Metrics,
		OnSelect: func(rec catalog.PlantRecord) {
			ui.selected = &rec
			ui.logger.Info("plant selected", "record_id", rec.ID)
		},
	})
	ui.boundary = scene.NewBoundary(ui.logger, ui.cfg.Metrics)
	ui.frame = scene.Frame{}
	ui.selected = nil
	snap := ui.coord.Store().Snapshot()
	ui.version = snap.Version
	ui.composer.SetRecords(snap.Records)
	ui.composer.SetQuery(ui.query)
}

func (ui *tourUI) currentView() view {
	snap := ui.coord.Store().Snapshot()
	return selectView(snap.State, ui.boundary.State() == scene.Faulted, len(snap.Records), len(ui.composer.Filtered()))
}

func (ui *tourUI) update(delta time.Duration) {
	ui.pollLoads()
	ui.pollChanges()

	in := readInput()
	switch ui.currentView() {
	case viewFault:
		if in.remount {
			ui.logger.Info("remounting scene")
			ui.mount()
		}
		return
	case viewFailed:
		if in.retry {
			ui.status = "Retrying..."
			ui.coord.Request(ui.ctx)
		}
		return
	case viewLoading:
		return
	}

	ui.applySearch(in)
	ui.orbit.drag(float64(in.drag.X), float64(in.drag.Y))
	ui.orbit.zoom(float64(in.wheel))
	if in.toggleSpin {
		ui.orbit.AutoRotate = !ui.orbit.AutoRotate
	}
	ui.orbit.advance(delta.Seconds())

	ui.hovered = ui.pick(in.mouse)
	if in.click && ui.hovered >= 0 {
		ui.composer.Select(ui.hovered)
	}

	if !rl.IsWindowReady() {
		ui.composer.MarkContextLost(scene.ErrContextLost)
	}
	ui.renderFrame()
}

func (ui *tourUI) pollLoads() {
	if !ui.coord.Poll() {
		return
	}
	snap := ui.coord.Store().Snapshot()
	if snap.Version == ui.version {
		return
	}
	ui.version = snap.Version
	ui.composer.SetRecords(snap.Records)
	ui.syncSelection()
	ui.status = ""
	if snap.State == catalog.StateFailed {
		ui.status = snap.Err.Error()
	}
}

func (ui *tourUI) pollChanges() {
	if ui.changes == nil {
		return
	}
	select {
	case _, ok := <-ui.changes:
		if !ok {
			ui.changes = nil
			return
		}
		ui.logger.Info("dataset changed on disk, reloading")
		ui.coord.Request(ui.ctx)
	default:
	}
}

func (ui *tourUI) applySearch(in frameInput) {
	query := ui.query
	if in.clear {
		query = ""
	}
	query = editQuery(query, in.typed, in.backspace, maxQueryLen)
	if query == ui.query {
		return
	}
	ui.query = query
	ui.composer.SetQuery(query)
	ui.syncSelection()
}

// syncSelection drops the selection once its plant leaves the view.
func (ui *tourUI) syncSelection() {
	if ui.selected == nil {
		return
	}
	for _, inst := range ui.composer.Instances() {
		if inst.Record.ID == ui.selected.ID {
			return
		}
	}
	ui.selected = nil
}

func (ui *tourUI) pick(mouse rl.Vector2) int {
	ray := rl.GetScreenToWorldRay(mouse, ui.orbit.camera())
	i, ok := ui.composer.Pick(scene.Ray{Origin: fromRL(ray.Position), Direction: fromRL(ray.Direction)})
	if !ok {
		return -1
	}
	return i
}

func (ui *tourUI) renderFrame() {
	err := ui.boundary.Guard(func() error {
		frame, err := ui.composer.Frame()
		if err != nil {
			return err
		}
		ui.frame = frame
		return nil
	})
	if err != nil && ui.boundary.State() != scene.Faulted {
		ui.logger.Warn("frame skipped", "error", err)
	}
}
