package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts netlist record operations.
type Metrics struct {
	created *prometheus.CounterVec
	deleted prometheus.Counter
}

// NewMetrics registers the netlist counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netlists_created_total",
				Help: "Netlist create attempts by result.",
			},
			[]string{"result"},
		),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netlists_deleted_total",
			Help: "Netlists deleted.",
		}),
	}
	for _, c := range []prometheus.Collector{m.created, m.deleted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeCreate(err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidNetlist), errors.Is(err, ErrNameRequired):
		result = "invalid"
	default:
		result = "error"
	}
	m.created.WithLabelValues(result).Inc()
}

func (m *Metrics) observeDelete() {
	if m == nil {
		return
	}
	m.deleted.Inc()
}
