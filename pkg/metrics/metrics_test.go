package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer("room_booking", prometheus.NewRegistry())

	m.IncBookingRejection("slot_taken")
	m.IncBookingRejection("slot_taken")
	m.IncBookingRejection("date_in_past")
	m.IncLoginAttempt("failure")
	m.IncLoginBlocked()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingRejections.WithLabelValues("slot_taken")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingRejections.WithLabelValues("date_in_past")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginBlocked))
}

func TestMetrics_HTTPAndDB(t *testing.T) {
	m := NewWithRegisterer("room_booking", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 15*time.Millisecond)
	m.ObserveDBQuery("INSERT", errors.New("boom"), time.Millisecond)
	m.SetDBPoolStats(4, 1, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.dbQueryDuration))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.dbOpenConns))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingRejection("slot_taken")
		m.IncLoginAttempt("success")
		m.IncLoginBlocked()
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("SELECT", nil, time.Second)
		m.SetDBPoolStats(1, 1, 1)
	})
}
