package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// replayMetrics is the Prometheus-backed generalization of the
// teacher's plain fmt.Printf metrics printout (spec.md §1 calls this an
// out-of-scope driver concern, not a core one).
type replayMetrics struct {
	eventsProcessed *prometheus.CounterVec
	eventsRejected  *prometheus.CounterVec
	activeLevels    prometheus.Gauge
	activeOrders    prometheus.Gauge
	batchLatency    prometheus.Histogram
}

func newReplayMetrics(reg prometheus.Registerer) *replayMetrics {
	factory := promauto.With(reg)
	return &replayMetrics{
		eventsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lob_events_processed_total",
			Help: "Lifecycle events processed without a fatal error (including ones skipped as recoverable), by kind.",
		}, []string{"kind"}),
		eventsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lob_events_rejected_total",
			Help: "Lifecycle events skipped as recoverable, by reason.",
		}, []string{"reason"}),
		activeLevels: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lob_active_levels",
			Help: "Resting price levels across all books at the last sample.",
		}),
		activeOrders: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lob_active_orders",
			Help: "Resting orders across all books at the last sample.",
		}),
		batchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lob_batch_latency_seconds",
			Help:    "Wall-clock latency of one replay batch.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
