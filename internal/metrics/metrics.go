// Package metrics exposes the tour's Prometheus collectors. All methods are
// safe on a nil *Metrics so components can run without instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "herbarium"

type Metrics struct {
	loads          *prometheus.CounterVec
	loadDuration   prometheus.Histogram
	instanceFaults *prometheus.CounterVec
	liveInstances  prometheus.Gauge
	boundaryFaults prometheus.Counter
	frames         prometheus.Counter
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset loads by outcome (ready, empty, fetch_error, format_error, stale).",
		}, []string{"outcome"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of dataset loads.",
			Buckets:   prometheus.DefBuckets,
		}),
		instanceFaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instance_faults_total",
			Help:      "Plant instances skipped because resolve, build or place failed.",
		}, []string{"stage"}),
		liveInstances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scene_instances",
			Help:      "Plant instances in the current filtered view.",
		}),
		boundaryFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boundary_faults_total",
			Help:      "Unrecoverable render faults caught by the failure boundary.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Composed frames.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.loads, m.loadDuration, m.instanceFaults, m.liveInstances, m.boundaryFaults, m.frames)
	}
	return m
}

// FaultsOnly returns a handle that shares the load and fault collectors of m
// but ignores SetLiveInstances, BoundaryFault and Frame. Short-lived composers
// use it so they cannot overwrite the gauges of the long-lived one.
func (m *Metrics) FaultsOnly() *Metrics {
	if m == nil {
		return nil
	}
	return &Metrics{
		loads:          m.loads,
		loadDuration:   m.loadDuration,
		instanceFaults: m.instanceFaults,
	}
}

func (m *Metrics) ObserveLoad(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(outcome).Inc()
	if d > 0 {
		m.loadDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) InstanceFault(stage string) {
	if m == nil {
		return
	}
	m.instanceFaults.WithLabelValues(stage).Inc()
}

func (m *Metrics) SetLiveInstances(n int) {
	if m == nil || m.liveInstances == nil {
		return
	}
	m.liveInstances.Set(float64(n))
}

func (m *Metrics) BoundaryFault() {
	if m == nil || m.boundaryFaults == nil {
		return
	}
	m.boundaryFaults.Inc()
}

func (m *Metrics) Frame() {
	if m == nil || m.frames == nil {
		return
	}
	m.frames.Inc()
}
