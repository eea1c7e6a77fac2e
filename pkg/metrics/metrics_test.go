package metrics

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.RecordAdmission("accepted")
	m.RecordAdmission("accepted")
	m.RecordAdmission("capacity_reached")
	m.RecordEmailDelivery("failed")
	m.RecordNotification("INFORMACION")
	m.RecordReminders(3)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/bookings/{bookingId}", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.admissionDecisions.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.admissionDecisions.WithLabelValues("capacity_reached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emailDeliveries.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("INFORMACION")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.remindersSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/v1/bookings/{bookingId}", "200")))
}

func TestMetrics_ObserveDBStats(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.observeDBStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3, WaitCount: 7})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbOpenConnections))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbInUse))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbIdle))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.dbWaitCount))
}
