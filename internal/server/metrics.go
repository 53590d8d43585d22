package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agenthands/naics/internal/core"
)

type metrics struct {
	turns    *prometheus.CounterVec
	searches *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naics",
			Name:      "turns_total",
			Help:      "Classification turns by outcome.",
		}, []string{"outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naics",
			Name:      "searches_total",
			Help:      "Context searches by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.turns, m.searches)
	return m
}

func (m *metrics) observeEvent(e core.Event) {
	switch e.Kind {
	case core.EventSearchDone:
		m.searches.WithLabelValues("ok").Inc()
	case core.EventSearchEmpty:
		m.searches.WithLabelValues("empty").Inc()
	case core.EventSearchFailed:
		m.searches.WithLabelValues("failed").Inc()
	}
}
