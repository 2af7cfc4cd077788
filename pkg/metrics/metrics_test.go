package metrics

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("hotel-booking", reg)

	m.RecordBooking(BookingCreated)
	m.RecordBooking(BookingCreated)
	m.RecordBooking(BookingConflict)
	m.RecordHTTPRequest(http.MethodPost, "/api/v1/rooms/{roomId}/bookings", http.StatusCreated, 15*time.Millisecond)
	m.ObserveDBQuery("insert", time.Millisecond, nil)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))
	m.IncTxRetry()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues(BookingCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues(BookingConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/rooms/{roomId}/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txRetriesTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(m.dbQueryDuration))
}

func TestMetrics_Gauges(t *testing.T) {
	m := NewWithRegistry("hotel-booking", prometheus.NewRegistry())

	m.SetDBPoolStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3, WaitCount: 7})
	m.StreamSubscribed()
	m.StreamSubscribed()
	m.StreamUnsubscribed()

	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbOpenConnections))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbInUseConnections))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbIdleConnections))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.dbWaitCount))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.streamSubscribers))
}
