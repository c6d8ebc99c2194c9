package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" debug "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn, false)

	logger.Info("[Test] hidden %d", 1)
	logger.Debug("[Test] hidden")
	logger.Warn("[Test] shown %s", "warn")
	logger.Error("[Test] shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[Test] shown warn")
	assert.Contains(t, out, "level=ERROR")
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelTrace, true)

	logger.Trace("deep %s", "detail")

	assert.Contains(t, buf.String(), `"level":"TRACE"`)
	assert.Contains(t, buf.String(), `"msg":"deep detail"`)
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelInfo, false).With("component", "charts")

	logger.Info("ready")

	assert.Contains(t, buf.String(), "component=charts")
	assert.Equal(t, LogLevelInfo, logger.GetLevel())
}
