package prom

import (
	"github.com/IvanBrykalov/ttable/tt"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements tt.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	stores   *prometheus.CounterVec
	capacity prometheus.Gauge
	hashfull prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "probe_hits_total",
			Help:        "Probes that found a matching entry",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "probe_misses_total",
			Help:        "Probes that returned a replacement victim",
			ConstLabels: constLabels,
		}),
		stores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "stores_total",
				Help:        "Save calls by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "capacity_entries",
			Help:        "Entry capacity of the current allocation",
			ConstLabels: constLabels,
		}),
		hashfull: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hashfull_permille",
			Help:        "Occupancy estimate over the first thousand entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.stores, a.capacity, a.hashfull)
	return a
}

// Hit increments the probe hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the probe miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Store increments the save counter with an outcome label.
func (a *Adapter) Store(o tt.StoreOutcome) {
	a.stores.WithLabelValues(outcome(o)).Inc()
}

// Resize updates the capacity gauge after an allocation swap.
func (a *Adapter) Resize(entries uint64) { a.capacity.Set(float64(entries)) }

// Hashfull updates the occupancy gauge with the latest estimate.
func (a *Adapter) Hashfull(permille int) { a.hashfull.Set(float64(permille)) }

// outcome maps StoreOutcome to a stable label value.
func outcome(o tt.StoreOutcome) string {
	switch o {
	case tt.StoreMoveOnly:
		return "move_only"
	case tt.StoreSkipped:
		return "skipped"
	default:
		return "written"
	}
}

// Compile-time check: ensure Adapter implements tt.Metrics.
var _ tt.Metrics = (*Adapter)(nil)
