package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OWMAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skycast_owm_api_calls_total",
			Help: "Total OpenWeatherMap API calls",
		},
		[]string{"endpoint", "status"},
	)

	OWMAPILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skycast_owm_api_latency_seconds",
			Help:    "OpenWeatherMap API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	LocateOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skycast_locate_outcomes_total",
			Help: "Location resolutions by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skycast_active_sessions",
			Help: "Browser sessions currently held in memory",
		},
	)

	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skycast_page_renders_total",
			Help: "Rendered pages and partials",
		},
		[]string{"template"},
	)

	ImagesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skycast_images_generated_total",
			Help: "Generated images by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)
