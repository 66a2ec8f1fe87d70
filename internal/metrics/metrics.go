package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DraftsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "drafts_generated_total",
			Help: "Total drafts generated",
		},
	)

	DraftFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_failures_total",
			Help: "Total failed draft requests",
		},
		[]string{"reason"},
	)

	RecipientsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipients_loaded",
			Help: "Number of recipients found in the contacts file at startup",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of live draft sessions",
		},
	)
)

func Init() {
	prometheus.MustRegister(DraftsGenerated)
	prometheus.MustRegister(DraftFailures)
	prometheus.MustRegister(RecipientsLoaded)
	prometheus.MustRegister(ActiveSessions)
}
