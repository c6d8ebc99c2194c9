// Package metrics exposes Prometheus counters and histograms for uploads,
// analyses and chart preparation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chartlab"

// Recorder records pipeline metrics. A nil *Recorder is a no-op.
type Recorder struct {
	uploads         *prometheus.CounterVec
	uploadRows      prometheus.Histogram
	analyses        prometheus.Counter
	preparations    *prometheus.CounterVec
	prepareDuration *prometheus.HistogramVec
	records         *prometheus.HistogramVec
}

// NewRecorder registers the collectors on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Dataset uploads by outcome.",
		}, []string{"outcome"}),
		uploadRows: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_rows",
			Help:      "Rows per accepted upload.",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 6),
		}),
		analyses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Dataset analyses performed.",
		}),
		preparations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_preparations_total",
			Help:      "Chart preparations by chart kind and support.",
		}, []string{"kind", "supported"}),
		prepareDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chart_prepare_seconds",
			Help:      "Time spent preparing chart records.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		records: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chart_records",
			Help:      "Records emitted per chart preparation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
	}
}

// Upload counts an upload attempt; rows is only observed on success
func (r *Recorder) Upload(ok bool, rows int) {
	if r == nil {
		return
	}
	if !ok {
		r.uploads.WithLabelValues("rejected").Inc()
		return
	}
	r.uploads.WithLabelValues("accepted").Inc()
	r.uploadRows.Observe(float64(rows))
}

// Analysis counts one analyzer run
func (r *Recorder) Analysis() {
	if r == nil {
		return
	}
	r.analyses.Inc()
}

// Prepare records one chart preparation
func (r *Recorder) Prepare(kind string, supported bool, records int, took time.Duration) {
	if r == nil {
		return
	}
	label := "true"
	if !supported {
		label = "false"
		kind = "unknown"
	}
	r.preparations.WithLabelValues(kind, label).Inc()
	if supported {
		r.prepareDuration.WithLabelValues(kind).Observe(took.Seconds())
		r.records.WithLabelValues(kind).Observe(float64(records))
	}
}
