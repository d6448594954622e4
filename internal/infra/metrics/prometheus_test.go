package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAPIMetrics(t *testing.T) {
	m := NewAPIMetrics(prometheus.NewRegistry())

	m.ProcedureCalled("cursos.list", "query", "OK")
	m.ProcedureCalled("cursos.list", "query", "OK")
	m.ProcedureCalled("cursos.create", "mutation", "FORBIDDEN")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.procedureCalls.WithLabelValues("cursos.list", "query", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.procedureCalls.WithLabelValues("cursos.create", "mutation", "FORBIDDEN")))

	m.RequestStarted("/api/trpc/:procedure", "GET")
	m.RequestCompleted("/api/trpc/:procedure", "GET", "200", 10*time.Millisecond, 128)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeRequests.WithLabelValues("/api/trpc/:procedure", "GET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("/api/trpc/:procedure", "GET", "200")))

	m.DuesGenerated(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.duesGenerated))
}
