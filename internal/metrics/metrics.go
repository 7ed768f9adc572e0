// Package metrics exposes Prometheus collectors for the booking registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/guestbook/internal/domain"
)

const namespace = "guestbook"

// BookingMetrics tracks the size of the registry and the flow of mutations.
// Observe is meant to be passed to registry.Subscribe.
type BookingMetrics struct {
	current prometheus.Gauge
	added   prometheus.Counter
	deleted prometheus.Counter

	last   int
	primed bool
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*BookingMetrics, error) {
	m := &BookingMetrics{
		current: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bookings_current",
			Help:      "Number of bookings currently held in the registry.",
		}),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_added_total",
			Help:      "Count of bookings appended to the registry.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_deleted_total",
			Help:      "Count of bookings removed from the registry.",
		}),
	}
	for _, c := range []prometheus.Collector{m.current, m.added, m.deleted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe updates the collectors from a registry snapshot.
// The registry calls observers one at a time, so last needs no locking.
// The first call (the replayed value on subscribe) only sets the gauge.
func (m *BookingMetrics) Observe(snapshot []domain.BookingEntry) {
	n := len(snapshot)
	m.current.Set(float64(n))
	if !m.primed {
		m.last, m.primed = n, true
		return
	}
	switch {
	case n > m.last:
		m.added.Add(float64(n - m.last))
	case n < m.last:
		m.deleted.Add(float64(m.last - n))
	}
	m.last = n
}
