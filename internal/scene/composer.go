package scene

import (
	"log/slog"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/metrics"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

const (
	stageResolve = "resolve"
	stageBuild   = "build"
	stagePlace   = "place"
)

// Instance is one placed, built plant of the current filtered view. Index is
// the record's position in the filtered view; Slot is its animation slot.
type Instance struct {
	Index      int
	Slot       int
	Record     catalog.PlantRecord
	VariantKey string
	Params     variant.Params
	Structure  Structure
	Base       Transform
	Bounds     Box
}

// Options configures a Composer. Zero values pick the defaults.
type Options struct {
	Variants *variant.Table
	Layout   Placer
	Builder  Builder
	Animator *Animator
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	// OnSelect receives the record of an instance the user targeted.
	OnSelect func(catalog.PlantRecord)
}

// Composer turns the catalog and the search query into frames. It runs on the
// frame-loop goroutine only.
type Composer struct {
	variants *variant.Table
	layout   Placer
	builder  Builder
	animator *Animator
	logger   *slog.Logger
	metrics  *metrics.Metrics
	onSelect func(catalog.PlantRecord)

	records   []catalog.PlantRecord
	query     string
	filtered  []catalog.PlantRecord
	instances []Instance
	tick      uint64
	lost      error
}

func NewComposer(opts Options) *Composer {
	c := &Composer{
		variants: opts.Variants,
		layout:   opts.Layout,
		builder:  opts.Builder,
		animator: opts.Animator,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		onSelect: opts.OnSelect,
	}
	if c.variants == nil {
		c.variants = variant.DefaultTable()
	}
	if c.layout == nil {
		c.layout = DefaultLayout()
	}
	if c.builder == nil {
		c.builder = ProceduralBuilder{}
	}
	if c.animator == nil {
		c.animator = NewAnimator(DefaultStep)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// SetRecords replaces the source records wholesale and recomposes.
func (c *Composer) SetRecords(records []catalog.PlantRecord) {
	c.records = records
	c.filtered = catalog.Filter(c.records, c.query)
	c.recompose()
}

// SetQuery applies a new search query. Instances are rebuilt only when the
// filtered sequence actually changes, so typing that keeps the same matches
// leaves the view untouched.
func (c *Composer) SetQuery(query string) {
	if query == c.query {
		return
	}
	c.query = query
	filtered := catalog.Filter(c.records, query)
	if sameIDs(filtered, c.filtered) {
		return
	}
	c.filtered = filtered
	c.recompose()
}

func (c *Composer) Query() string {
	return c.query
}

// Filtered is the records passing the current query, including any whose
// instance faulted.
func (c *Composer) Filtered() []catalog.PlantRecord {
	return append([]catalog.PlantRecord(nil), c.filtered...)
}

func (c *Composer) Instances() []Instance {
	return append([]Instance(nil), c.instances...)
}

// Suggestions offers near names when a non-empty catalog filters to nothing.
func (c *Composer) Suggestions(limit int) []string {
	if len(c.filtered) > 0 || len(c.records) == 0 {
		return nil
	}
	return catalog.Suggest(c.records, c.query, limit)
}

func (c *Composer) recompose() {
	total := len(c.filtered)
	built := make([]Instance, 0, total)
	for i, rec := range c.filtered {
		inst, fault := c.composeOne(i, total, rec)
		if fault != nil {
			c.logger.Warn("skipping plant instance",
				"record_id", fault.RecordID,
				"index", fault.Index,
				"stage", fault.Stage,
				"error", fault.Err)
			c.metrics.InstanceFault(fault.Stage)
			continue
		}
		inst.Slot = len(built)
		built = append(built, inst)
	}
	c.instances = built
	c.animator.Rebind(len(built))
	c.metrics.SetLiveInstances(len(built))
	c.logger.Debug("scene composed", "query", c.query, "matched", total, "instances", len(built))
}

// composeOne builds a single instance. Errors and panics from the variant
// table, builder or layout are confined to this instance.
func (c *Composer) composeOne(index, total int, rec catalog.PlantRecord) (inst Instance, fault *InstanceFault) {
	stage := stageResolve
	defer func() {
		if r := recover(); r != nil {
			inst = Instance{}
			fault = &InstanceFault{RecordID: rec.ID, Index: index, Stage: stage, Err: panicError(r)}
		}
	}()

	key, params := c.variants.ResolveID(rec.ID)

	stage = stageBuild
	structure, err := c.builder.Build(params)
	if err != nil {
		return Instance{}, &InstanceFault{RecordID: rec.ID, Index: index, Stage: stage, Err: err}
	}

	stage = stagePlace
	base, err := c.layout.Place(index, total)
	if err != nil {
		return Instance{}, &InstanceFault{RecordID: rec.ID, Index: index, Stage: stage, Err: err}
	}

	return Instance{
		Index:      index,
		Record:     rec,
		VariantKey: key,
		Params:     params,
		Structure:  structure,
		Base:       base,
		Bounds:     localBounds(base, structure),
	}, nil
}

// Frame advances animation by one step and assembles the frame. It returns a
// *CatastrophicRenderFault once the rendering context is lost or if assembly
// itself panics.
func (c *Composer) Frame() (frame Frame, err error) {
	if c.lost != nil {
		return Frame{}, &CatastrophicRenderFault{Reason: "cannot compose frame", Err: c.lost}
	}
	defer func() {
		if r := recover(); r != nil {
			frame = Frame{}
			err = &CatastrophicRenderFault{Reason: "frame assembly panicked", Err: panicError(r)}
		}
	}()

	c.animator.Advance()
	c.tick++
	out := Frame{
		Tick:      c.tick,
		Query:     c.query,
		Instances: make([]RenderedInstance, 0, len(c.instances)),
	}
	for _, inst := range c.instances {
		out.Instances = append(out.Instances, renderInstance(inst, c.animator.Sway(inst.Slot)))
	}
	c.metrics.Frame()
	return out, nil
}

// MarkContextLost records a systemic renderer failure; every later Frame
// call escalates.
func (c *Composer) MarkContextLost(cause error) {
	if cause == nil {
		cause = ErrContextLost
	}
	c.lost = cause
}

// Select emits the record of instance i to OnSelect. The composer keeps no
// selection state of its own.
func (c *Composer) Select(i int) bool {
	if i < 0 || i >= len(c.instances) {
		return false
	}
	if c.onSelect != nil {
		c.onSelect(c.instances[i].Record)
	}
	return true
}

// Pick returns the position in Instances of the nearest instance hit by ray.
func (c *Composer) Pick(ray Ray) (int, bool) {
	best, bestDist := -1, 0.0
	for i, inst := range c.instances {
		d, ok := ray.Intersect(inst.Bounds)
		if !ok {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

func sameIDs(a, b []catalog.PlantRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
