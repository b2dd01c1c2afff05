// Package metrics instruments the dashboard's polling with Prometheus.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests and multiple dashboards in one
// process never collide on the global one.
type Recorder struct {
	registry *prometheus.Registry

	FetchDuration *prometheus.HistogramVec
	FetchTotal    *prometheus.CounterVec
	StaleDropped  *prometheus.CounterVec
	Hosts         prometheus.Gauge
	FailingChecks prometheus.Gauge
	LastSuccess   *prometheus.GaugeVec
}

// New creates a Recorder with every healthdash_* metric registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		FetchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "healthdash_fetch_duration_seconds",
				Help:    "Time spent on backend API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "outcome"},
		),
		FetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "healthdash_fetches_total",
				Help: "Backend API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		StaleDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "healthdash_stale_messages_dropped_total",
				Help: "Ticks and fetch results discarded because their poll was released",
			},
			[]string{"target"},
		),
		Hosts: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "healthdash_fleet_hosts",
				Help: "Hosts in the last successful fleet snapshot",
			},
		),
		FailingChecks: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "healthdash_fleet_failing_checks",
				Help: "Check types whose latest status is not success, summed over the fleet",
			},
		),
		LastSuccess: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "healthdash_last_success_timestamp_seconds",
				Help: "Unix time of the last successful poll per target",
			},
			[]string{"target"},
		),
	}
}

// ObserveFetch records one completed backend request.
func (r *Recorder) ObserveFetch(endpoint, outcome string, took time.Duration) {
	r.FetchDuration.WithLabelValues(endpoint, outcome).Observe(took.Seconds())
	r.FetchTotal.WithLabelValues(endpoint, outcome).Inc()
}

// DropStale counts a discarded message for target.
func (r *Recorder) DropStale(target string) {
	r.StaleDropped.WithLabelValues(target).Inc()
}

// SetFleet records the size and health of a fresh fleet snapshot.
func (r *Recorder) SetFleet(hosts, failing int) {
	r.Hosts.Set(float64(hosts))
	r.FailingChecks.Set(float64(failing))
}

// MarkSuccess stamps the last successful poll time for target.
func (r *Recorder) MarkSuccess(target string, at time.Time) {
	r.LastSuccess.WithLabelValues(target).Set(float64(at.Unix()))
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled. It returns once the
// listener is bound so callers learn about port clashes immediately.
func (r *Recorder) Serve(ctx context.Context, addr string) (net.Addr, <-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return ln.Addr(), done, nil
}
