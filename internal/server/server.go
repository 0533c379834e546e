// Package server exposes the catalog and composed scenes over HTTP for
// environments without a display.
package server

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/metrics"
	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
	"github.com/appengine-ltd/virtual-herbarium/internal/snapshot"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

const suggestionLimit = 3

// Deps are the collaborators a handler needs. Store is required.
type Deps struct {
	Store    *catalog.Store
	Variants *variant.Table
	Layout   scene.Placer
	// AnimationStep seeds the per-request animator.
	AnimationStep float64
	Logger        *slog.Logger
	// Metrics receives instance faults from request-scoped composers.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Reload, when set, is triggered by POST /reload.
	Reload   func()
	Snapshot snapshot.Options
}

type server struct {
	Deps
}

// NewHandler builds the HTTP API.
func NewHandler(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Variants == nil {
		d.Variants = variant.DefaultTable()
	}
	if d.Layout == nil {
		d.Layout = scene.DefaultLayout()
	}
	if d.Snapshot.Width == 0 {
		d.Snapshot = snapshot.DefaultOptions()
	}
	d.Metrics = d.Metrics.FaultsOnly()
	s := &server{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Get("/plants", s.plants)
	r.Get("/scene", s.sceneJSON)
	r.Get("/snapshot.png", s.snapshotPNG)
	if d.Reload != nil {
		r.Post("/reload", s.reload)
	}
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type healthResponse struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog"`
	Plants  int    `json:"plants"`
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Snapshot()
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Catalog: snap.State.String(), Plants: len(snap.Records)})
}

type plantsResponse struct {
	State   string                `json:"state"`
	Query   string                `json:"query"`
	Plants  []catalog.PlantRecord `json:"plants"`
	Version uint64                `json:"version"`
}

func (s *server) plants(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	view := snap.View(q)
	if view == nil {
		view = []catalog.PlantRecord{}
	}
	s.writeJSON(w, http.StatusOK, plantsResponse{State: snap.State.String(), Query: q, Plants: view, Version: snap.Version})
}

type sceneResponse struct {
	State       string      `json:"state"`
	Frame       scene.Frame `json:"frame"`
	Faulted     int         `json:"faulted"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

func (s *server) sceneJSON(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}
	c := s.compose(snap, r.URL.Query().Get("q"))
	frame, err := c.Frame()
	if err != nil {
		s.Logger.Error("scene composition failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sceneResponse{
		State:       snap.State.String(),
		Frame:       frame,
		Faulted:     len(c.Filtered()) - len(frame.Instances),
		Suggestions: c.Suggestions(suggestionLimit),
	})
}

func (s *server) snapshotPNG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}
	opts := s.Snapshot
	if raw := r.URL.Query().Get("yaw"); raw != "" {
		yaw, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(yaw) || math.IsInf(yaw, 0) {
			s.writeError(w, http.StatusBadRequest, "yaw must be a number of radians")
			return
		}
		opts.Yaw = yaw
	}
	frame, err := s.compose(snap, r.URL.Query().Get("q")).Frame()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := snapshot.Encode(w, frame, opts); err != nil {
		s.Logger.Error("snapshot encode failed", "error", err)
	}
}

func (s *server) reload(w http.ResponseWriter, r *http.Request) {
	s.Reload()
	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "reloading"})
}

// compose builds a request-scoped composer. Its metrics handle counts
// instance faults only; the live-instance gauge and frame counter belong to
// the tour.
func (s *server) compose(snap catalog.Snapshot, query string) *scene.Composer {
	c := scene.NewComposer(scene.Options{
		Variants: s.Variants,
		Layout:   s.Layout,
		Animator: scene.NewAnimator(s.AnimationStep),
		Logger:   s.Logger,
		Metrics:  s.Metrics,
	})
	c.SetRecords(snap.Records)
	c.SetQuery(query)
	return c
}

// readySnapshot writes an error response and returns false when there is
// nothing to serve: the first load is still running or the last load failed.
// A reload in flight keeps serving the previous records.
func (s *server) readySnapshot(w http.ResponseWriter) (catalog.Snapshot, bool) {
	snap := s.Store.Snapshot()
	switch snap.State {
	case catalog.StateLoading:
		if len(snap.Records) > 0 {
			return snap, true
		}
		w.Header().Set("Retry-After", "1")
		s.writeError(w, http.StatusServiceUnavailable, "catalog is loading")
		return snap, false
	case catalog.StateFailed:
		msg := "catalog failed to load"
		if snap.Err != nil {
			msg += ": " + snap.Err.Error()
		}
		s.writeError(w, http.StatusBadGateway, msg)
		return snap, false
	}
	return snap, true
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("response encode failed", "error", err)
	}
}
