package loader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/metrics"
)

// Result is the outcome of one load request.
type Result struct {
	Gen       uint64
	RequestID string
	Records   []catalog.PlantRecord
	Err       error
	Took      time.Duration
}

// Coordinator runs loads in the background and commits their results to a
// catalog.Store on the caller's goroutine. Only the most recent request's
// result is committed; earlier ones are dropped when they arrive.
type Coordinator struct {
	loader  *Loader
	store   *catalog.Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	results chan Result
	wg      sync.WaitGroup
}

func NewCoordinator(l *Loader, store *catalog.Store, logger *slog.Logger, m *metrics.Metrics) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		loader:  l,
		store:   store,
		logger:  logger,
		metrics: m,
		results: make(chan Result, 8),
	}
}

func (c *Coordinator) Store() *catalog.Store {
	return c.store
}

// Request starts a load and returns its generation. It never blocks.
func (c *Coordinator) Request(ctx context.Context) uint64 {
	gen := c.store.Begin()
	id := uuid.NewString()
	c.logger.Debug("dataset load requested", "request_id", id, "gen", gen)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		start := time.Now()
		records, err := c.loader.Load(ctx)
		res := Result{Gen: gen, RequestID: id, Records: records, Err: err, Took: time.Since(start)}
		select {
		case c.results <- res:
		case <-ctx.Done():
		}
	}()
	return gen
}

// Poll commits any finished loads without blocking. It reports whether the
// store changed.
func (c *Coordinator) Poll() bool {
	changed := false
	for {
		select {
		case res := <-c.results:
			if c.apply(res) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// Sync requests a load and blocks until it has been committed or ctx ends.
// It must not run concurrently with Poll.
func (c *Coordinator) Sync(ctx context.Context) (catalog.Snapshot, error) {
	gen := c.Request(ctx)
	for {
		select {
		case res := <-c.results:
			c.apply(res)
			if res.Gen == gen {
				return c.store.Snapshot(), nil
			}
		case <-ctx.Done():
			return c.store.Snapshot(), ctx.Err()
		}
	}
}

// Wait blocks until every started load goroutine has returned.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) apply(res Result) bool {
	if !c.store.Commit(res.Gen, res.Records, res.Err) {
		c.metrics.ObserveLoad(OutcomeStale, 0)
		c.logger.Debug("discarding superseded dataset load", "request_id", res.RequestID, "gen", res.Gen)
		return false
	}
	snap := c.store.Snapshot()
	c.logger.Info("catalog updated", "request_id", res.RequestID, "state", snap.State.String(), "plants", len(snap.Records), "took", res.Took)
	return true
}
