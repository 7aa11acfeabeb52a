package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/golsh"
)

// PromMetrics exports index operations of a run as Prometheus metrics,
// labeled by the table count of the index that served them.
type PromMetrics struct {
	registry   *prometheus.Registry
	opLatency  *prometheus.HistogramVec
	results    *prometheus.CounterVec
	batchItems *prometheus.CounterVec
}

// NewPromMetrics creates the metrics on a private registry.
func NewPromMetrics() *PromMetrics {
	m := &PromMetrics{
		registry: prometheus.NewRegistry(),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "golsh_operation_latency_seconds",
			Help:    "Latency of index operations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "status", "tables"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "golsh_query_results_total",
			Help: "Total results returned by queries",
		}, []string{"tables"}),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "golsh_batch_insert_items_total",
			Help: "Total items submitted in batch inserts",
		}, []string{"status", "tables"}),
	}

	m.registry.MustRegister(m.opLatency, m.results, m.batchItems)
	return m
}

// Collector returns a MetricsCollector for the index with the given table count.
func (m *PromMetrics) Collector(tables int) golsh.MetricsCollector {
	return &promCollector{m: m, tables: strconv.Itoa(tables)}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PromMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *PromMetrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type promCollector struct {
	m      *PromMetrics
	tables string
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *promCollector) RecordInsert(d time.Duration, err error) {
	c.m.opLatency.WithLabelValues("insert", status(err), c.tables).Observe(d.Seconds())
}

func (c *promCollector) RecordBatchInsert(count, failed int, d time.Duration) {
	st := "success"
	if failed > 0 {
		st = "error"
	}
	c.m.opLatency.WithLabelValues("batch_insert", st, c.tables).Observe(d.Seconds())
	c.m.batchItems.WithLabelValues(st, c.tables).Add(float64(count))
}

func (c *promCollector) RecordQuery(_ int, results int, d time.Duration, err error) {
	c.m.opLatency.WithLabelValues("query", status(err), c.tables).Observe(d.Seconds())
	if err == nil {
		c.m.results.WithLabelValues(c.tables).Add(float64(results))
	}
}

// teeCollector forwards every record to each of its collectors.
type teeCollector []golsh.MetricsCollector

func (t teeCollector) RecordInsert(d time.Duration, err error) {
	for _, c := range t {
		c.RecordInsert(d, err)
	}
}

func (t teeCollector) RecordBatchInsert(count, failed int, d time.Duration) {
	for _, c := range t {
		c.RecordBatchInsert(count, failed, d)
	}
}

func (t teeCollector) RecordQuery(limit, results int, d time.Duration, err error) {
	for _, c := range t {
		c.RecordQuery(limit, results, d, err)
	}
}
