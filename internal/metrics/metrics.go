// Package metrics exposes Prometheus counters for the playback pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gateway's Prometheus collectors
type Metrics struct {
	SourcesResolved *prometheus.CounterVec
	AccessDenied    prometheus.Counter
	SigningFailures prometheus.Counter
	StaleDiscarded  prometheus.Counter
	Uploads         *prometheus.CounterVec
}

// New registers the gateway collectors with the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SourcesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playback_sources_resolved_total",
			Help: "Playback sources resolved, by strategy.",
		}, []string{"strategy"}),
		AccessDenied: factory.NewCounter(prometheus.CounterOpts{
			Name: "playback_access_denied_total",
			Help: "Lesson playback requests denied for lack of enrollment.",
		}),
		SigningFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "playback_signing_failures_total",
			Help: "Signed-URL requests that failed or returned an unrecognizable grant.",
		}),
		StaleDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "playback_stale_results_discarded_total",
			Help: "Resolution results discarded because the viewer switched lessons mid-flight.",
		}),
		Uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "video_uploads_total",
			Help: "Raw video uploads to the CDN, by result.",
		}, []string{"result"}),
	}
}
