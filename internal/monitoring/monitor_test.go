package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMonitor_Snapshot(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("menu_views", 7)

	value, ok := m.GetMetric("menu_views")
	assert.True(t, ok)
	assert.Equal(t, 7, value)

	_, ok = m.GetMetric("unknown")
	assert.False(t, ok)

	snapshot := m.GetMetrics()
	assert.Equal(t, 7, snapshot["menu_views"])
	assert.Contains(t, snapshot, "uptime_seconds")

	// the snapshot is a copy
	snapshot["menu_views"] = 0
	value, _ = m.GetMetric("menu_views")
	assert.Equal(t, 7, value)
}

func TestMonitor_RecordReply(t *testing.T) {
	m := NewMonitor()

	m.RecordReply("booking")
	m.RecordReply("booking")
	m.RecordReply("fallback")

	metrics := m.GetMetrics()
	assert.Equal(t, 2, metrics["chat_replies_booking"])
	assert.Equal(t, 1, metrics["chat_replies_fallback"])
	assert.Equal(t, 2.0, testutil.ToFloat64(m.chatReplies.WithLabelValues("booking")))
}

func TestMonitor_RecordBooking(t *testing.T) {
	m := NewMonitor()

	m.RecordBooking(true)
	m.RecordBooking(false)
	m.RecordBooking(false)

	metrics := m.GetMetrics()
	assert.Equal(t, 1, metrics["booking_confirmed"])
	assert.Equal(t, 2, metrics["booking_incomplete"])
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues("incomplete")))
}

func TestMonitor_SetActiveSessions(t *testing.T) {
	m := NewMonitor()
	m.SetActiveSessions(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))
	value, ok := m.GetMetric("chat_sessions_active")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
}
