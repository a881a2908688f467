package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render metrics
var (
	// RendersTotal counts image renders by status (ok, error)
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rns_image_renders_total",
			Help: "Total image renders by status",
		},
		[]string{"status"},
	)

	// RenderDuration tracks compose + encode latency in seconds
	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rns_image_render_duration_seconds",
			Help:    "Image render duration in seconds, including PNG encoding",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// PNGBytes tracks the size of encoded images
	PNGBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rns_image_png_bytes",
			Help:    "Size of encoded PNG responses in bytes",
			Buckets: prometheus.ExponentialBuckets(4096, 2, 8),
		},
	)

	// AssetsLoaded is 1 once the font and overlay are in memory
	AssetsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rns_image_assets_loaded",
			Help: "Whether the font and overlay assets are loaded (1) or not (0)",
		},
	)
)
