package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.Upload(true, 120)
	rec.Upload(false, 0)
	rec.Upload(true, 3)
	rec.Analysis()
	rec.Prepare("bar", true, 12, 2*time.Millisecond)
	rec.Prepare("radar", false, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.uploads.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.uploads.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.analyses))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.preparations.WithLabelValues("bar", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.preparations.WithLabelValues("unknown", "false")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.records))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Upload(true, 1)
		rec.Analysis()
		rec.Prepare("pie", true, 1, time.Millisecond)
	})
}
