package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/collatzcheck/internal/orchestration"
)

const namespace = "collatz"

// Recorder converts batch events into Prometheus metrics.
type Recorder struct {
	registry *prometheus.Registry
	handler  http.Handler

	batches      prometheus.Counter
	verified     prometheus.Counter
	cpuSeconds   prometheus.Counter
	duration     prometheus.Histogram
	frontierBits prometheus.Gauge
	maxSteps     prometheus.Gauge
	inFlight     prometheus.Gauge
	threads      prometheus.Gauge

	longest uint64
}

// Verify interface compliance.
var _ orchestration.BatchReporter = (*Recorder)(nil)

// NewRecorder creates a Recorder with a private registry that also carries
// the Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Number of batches fully verified.",
		}),
		verified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_verified_total",
			Help:      "Number of candidates shown to reach 1.",
		}),
		cpuSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_cpu_seconds_total",
			Help:      "Process CPU time spent inside batches.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock time from launch to join of a batch.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		frontierBits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_bits",
			Help:      "Bit length of the next unchecked candidate.",
		}),
		maxSteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_stopping_time",
			Help:      "Longest trajectory seen so far; stays 0 unless step counting is enabled.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_in_flight",
			Help:      "1 while a batch is running, 0 between batches.",
		}),
		threads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_threads",
			Help:      "Number of workers per batch.",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.batches, r.verified, r.cpuSeconds, r.duration,
		r.frontierBits, r.maxSteps, r.inFlight, r.threads,
	)
	r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
	return r
}

// Registry returns the registry holding every metric of the Recorder.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (r *Recorder) Handler() http.Handler { return r.handler }

// BatchStarted marks a batch as in flight.
func (r *Recorder) BatchStarted(plan orchestration.BatchPlan) {
	r.inFlight.Set(1)
	r.threads.Set(float64(len(plan.Ranges)))
	r.frontierBits.Set(float64(plan.Start.BitLen()))
}

// BatchCompleted records the outcome of a batch.
func (r *Recorder) BatchCompleted(report orchestration.BatchReport) {
	r.inFlight.Set(0)
	r.batches.Inc()
	r.verified.Add(float64(report.Verified))
	r.cpuSeconds.Add(report.CPUTime.Seconds())
	r.duration.Observe(report.Elapsed.Seconds())
	r.frontierBits.Set(float64(report.End.BitLen()))
	if report.MaxStepsAt != nil && report.MaxSteps > r.longest {
		r.longest = report.MaxSteps
		r.maxSteps.Set(float64(r.longest))
	}
}
