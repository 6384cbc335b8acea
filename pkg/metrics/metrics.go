package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsScanned      prometheus.Counter
	URLsRewritten     *prometheus.CounterVec
	CacheMetaDeleted  prometheus.Counter
	RenderInvalidated prometheus.Counter
	SiteScanDuration  prometheus.Histogram

	initOnce sync.Once
)

// Init registers the run counters. Safe to call more than once; the
// collectors are registered exactly once per process.
func Init() {
	initOnce.Do(func() {
		PostsScanned = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "posts_scanned_total",
				Help: "Total number of content records scanned for video URLs.",
			},
		)

		URLsRewritten = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urls_rewritten_total",
				Help: "Total number of URL rewrites produced.",
			},
			[]string{"mode"}, // mode: applied, preview
		)

		CacheMetaDeleted = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "oembed_meta_deleted_total",
				Help: "Total number of oEmbed cache metadata rows deleted.",
			},
		)

		RenderInvalidated = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "render_cache_invalidated_total",
				Help: "Total number of cached post renderings invalidated.",
			},
		)

		SiteScanDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "site_scan_duration_seconds",
				Help:    "Duration of one site's scan pass.",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
		)
	})
}
