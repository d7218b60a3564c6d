// Package metrics exposes Prometheus counters for normalization and merge
// runs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/contact-cli/internal/model"
)

const namespace = "contact"

// Recorder owns a registry and the collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry

	records     *prometheus.CounterVec
	fieldStatus *prometheus.CounterVec
	duplicates  prometheus.Counter
	nearDups    prometheus.Counter
	requests    *prometheus.HistogramVec
}

// New builds a Recorder with Go runtime and process collectors included.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records seen by the normalizer, by outcome.",
		}, []string{"outcome"}),
		fieldStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_status_total",
			Help:      "Field tags set during normalization.",
		}, []string{"field", "status"}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_duplicates_skipped_total",
			Help:      "Records skipped because an earlier record had the same name.",
		}),
		nearDups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_near_duplicates_total",
			Help:      "Pairs of kept names within the near-duplicate distance.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.records,
		r.fieldStatus,
		r.duplicates,
		r.nearDups,
		r.requests,
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveNormalize records the outcome of a batch normalization.
func (r *Recorder) ObserveNormalize(s model.NormalizeStats) {
	r.records.WithLabelValues("normalized").Add(float64(s.Normalized))
	r.records.WithLabelValues("nameless_rejected").Add(float64(s.NamelessRejected))
	for f, byStatus := range s.Statuses {
		for st, n := range byStatus {
			r.fieldStatus.WithLabelValues(string(f), string(st)).Add(float64(n))
		}
	}
}

// ObserveMerge records the outcome of a merge.
func (r *Recorder) ObserveMerge(s model.MergeStats) {
	r.records.WithLabelValues("merged").Add(float64(s.Merged))
	r.records.WithLabelValues("nameless_rejected").Add(float64(s.NamelessRejected))
	r.duplicates.Add(float64(s.DuplicatesSkipped))
	r.nearDups.Add(float64(len(s.NearDuplicates)))
}

// ObserveRequest records one HTTP request.
func (r *Recorder) ObserveRequest(route, method string, code int, d time.Duration) {
	r.requests.WithLabelValues(route, method, strconv.Itoa(code)).Observe(d.Seconds())
}
