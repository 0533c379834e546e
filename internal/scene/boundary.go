package scene

import (
	"errors"
	"log/slog"

	"github.com/appengine-ltd/virtual-herbarium/internal/metrics"
)

type BoundaryState int

const (
	Healthy BoundaryState = iota
	Faulted
)

func (s BoundaryState) String() string {
	if s == Faulted {
		return "faulted"
	}
	return "healthy"
}

// Boundary wraps the scene render function. The first panic or
// *CatastrophicRenderFault moves it to Faulted for good; the caller then
// shows a static recovery view. Recovery is a remount: a new Boundary.
type Boundary struct {
	state   BoundaryState
	fault   error
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewBoundary(logger *slog.Logger, m *metrics.Metrics) *Boundary {
	if logger == nil {
		logger = slog.Default()
	}
	return &Boundary{logger: logger, metrics: m}
}

func (b *Boundary) State() BoundaryState {
	return b.state
}

// Fault returns the fault that tripped the boundary, or nil while healthy.
func (b *Boundary) Fault() error {
	return b.fault
}

// Guard runs fn unless the boundary has faulted. Errors other than
// *CatastrophicRenderFault are returned unchanged and do not trip it.
func (b *Boundary) Guard(fn func() error) (err error) {
	if b.state == Faulted {
		return b.fault
	}
	defer func() {
		if r := recover(); r != nil {
			b.trip(&CatastrophicRenderFault{Reason: "render panicked", Err: panicError(r)})
			err = b.fault
		}
	}()

	err = fn()
	var fault *CatastrophicRenderFault
	if errors.As(err, &fault) {
		b.trip(err)
		return b.fault
	}
	return err
}

func (b *Boundary) trip(err error) {
	if b.state == Faulted {
		return
	}
	b.state = Faulted
	b.fault = err
	b.metrics.BoundaryFault()
	b.logger.Error("scene faulted, showing recovery view", "error", err)
}
