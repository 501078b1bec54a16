package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(actesIssued.WithLabelValues("issued"))
	ObserveActeIssue("issued")
	ObserveActeIssue("issued")
	assert.Equal(t, before+2, testutil.ToFloat64(actesIssued.WithLabelValues("issued")))

	before = testutil.ToFloat64(auditWrites.WithLabelValues("error"))
	ObserveAuditWrite("error")
	assert.Equal(t, before+1, testutil.ToFloat64(auditWrites.WithLabelValues("error")))

	before = testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/mariages", "200"))
	ObserveHTTPRequest("GET", "/api/mariages", "200", 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/mariages", "200")))
}
