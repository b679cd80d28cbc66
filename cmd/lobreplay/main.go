// Command lobreplay is the generalized successor to the teacher's
// main.go: it replays a stream of order-lifecycle events through a
// lob.Manager in fixed-size batches, timing each batch the way the
// teacher times its matching loop, and optionally snapshots the final
// book state to Postgres. It is a driver collaborator per spec.md §1 —
// none of this package is imported by lob.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/grd/stat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/voyager-lob/lobengine/internal/feed"
	"github.com/voyager-lob/lobengine/lob"
)

// defaults mirror the teacher's hardcoded constants
// (lightsgoout-go-quantcup/main.go: batchSize=10, ordersToGenerate=100000).
const (
	defaultBatchSize   = 10
	defaultSynthetic   = 100000
	defaultMidPrice    = 10000
	defaultSpread      = 500
	defaultMetricsAddr = ":9090"
)

type replayConfig struct {
	feedPath    string
	synthetic   int
	batchSize   int
	metricsAddr string
	snapshotDSN string
	seed        int64
}

func main() {
	cfg := &replayConfig{}

	root := &cobra.Command{
		Use:   "lobreplay",
		Short: "Replay an order-lifecycle feed through the limit order book engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	root.Flags().StringVar(&cfg.feedPath, "feed", "", "path to a feed file (line format, see internal/feed); use - for stdin")
	root.Flags().IntVar(&cfg.synthetic, "synthetic", defaultSynthetic, "generate this many synthetic events instead of reading --feed")
	root.Flags().IntVar(&cfg.batchSize, "batch-size", defaultBatchSize, "events applied per timed batch")
	root.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", defaultMetricsAddr, "address to serve Prometheus /metrics on")
	root.Flags().StringVar(&cfg.snapshotDSN, "snapshot-dsn", "", "optional Postgres DSN to write a final book snapshot to")
	root.Flags().Int64Var(&cfg.seed, "seed", 42, "seed for --synthetic generation (teacher's randomSeed default)")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *replayConfig) error {
	events, err := loadEvents(cfg)
	if err != nil {
		return err
	}
	log.Printf("lobreplay: %d events loaded", len(events))

	registry := prometheus.NewRegistry()
	metrics := newReplayMetrics(registry)
	srv := serveMetrics(cfg.metricsAddr, registry)
	defer srv.Close()

	runID := uuid.New()
	log.Printf("lobreplay: run %s starting, batch size %d", runID, cfg.batchSize)

	manager := lob.NewManager()
	manager.OnReject = func(reason string) {
		metrics.eventsRejected.WithLabelValues(reason).Inc()
	}
	batchLatencies := make([]time.Duration, 0, len(events)/cfg.batchSize+1)

	totalBegin := time.Now()
	for start := 0; start < len(events); start += cfg.batchSize {
		end := start + cfg.batchSize
		if end > len(events) {
			end = len(events)
		}

		begin := time.Now()
		for _, ev := range events[start:end] {
			if err := ev.Apply(manager); err != nil {
				if errors.Is(err, lob.ErrOverflow) {
					return fmt.Errorf("lobreplay: fatal id overflow, halting ingestion: %w", err)
				}
				return err
			}
			metrics.eventsProcessed.WithLabelValues(ev.Kind.String()).Inc()
		}
		elapsed := time.Since(begin)
		batchLatencies = append(batchLatencies, elapsed)
		metrics.batchLatency.Observe(elapsed.Seconds())
	}
	totalElapsed := time.Since(totalBegin)

	sampleLiveTotals(manager, metrics)
	reportLatency(batchLatencies, totalElapsed, len(events))

	if cfg.snapshotDSN != "" {
		if err := writeSnapshot(cfg.snapshotDSN, runID, manager); err != nil {
			return fmt.Errorf("lobreplay: snapshot failed: %w", err)
		}
	}

	return nil
}

func loadEvents(cfg *replayConfig) ([]feed.Event, error) {
	if cfg.feedPath == "" {
		return feed.GenerateSynthetic(cfg.synthetic, cfg.seed, 1, defaultMidPrice, defaultSpread), nil
	}

	if cfg.feedPath == "-" {
		return feed.Decode(os.Stdin)
	}

	f, err := os.Open(cfg.feedPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return feed.Decode(f)
}

func sampleLiveTotals(m *lob.Manager, metrics *replayMetrics) {
	var levels, orders int
	for _, book := range m.Books() {
		bidLevels, askLevels := book.Depth()
		levels += bidLevels + askLevels
		orders += book.OrderCount()
	}
	metrics.activeLevels.Set(float64(levels))
	metrics.activeOrders.Set(float64(orders))
}

// reportLatency prints the teacher's exact mean/stddev-and-throughput
// shape (lightsgoout-go-quantcup/main.go), computed with
// github.com/grd/stat over a durationSlice, as the teacher does.
func reportLatency(batchLatencies []time.Duration, total time.Duration, eventCount int) {
	if len(batchLatencies) == 0 {
		return
	}

	durations := durationSlice(batchLatencies)
	mean := stat.Mean(durations)
	stdDev := stat.SdMean(durations, mean)

	fmt.Printf("[lobreplay] mean(batch latency) = %1.6fs, sd(batch latency) = %1.6fs\n", mean*nanoToSeconds, stdDev*nanoToSeconds)
	fmt.Printf("[lobreplay] %d events in %s (%.1f events/sec)\n", eventCount, total, float64(eventCount)/(total.Seconds()))
}
