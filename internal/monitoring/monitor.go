package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor collects the site's counters, both as a JSON snapshot and as
// Prometheus metrics on its own registry.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time

	registry       *prometheus.Registry
	chatReplies    *prometheus.CounterVec
	bookings       *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	registry := prometheus.NewRegistry()

	chatReplies := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Scripted chat replies sent, by topic",
		},
		[]string{"topic"},
	)

	bookings := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking form submissions, by outcome",
		},
		[]string{"outcome"},
	)

	activeSessions := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Open chat conversations",
		},
	)

	registry.MustRegister(chatReplies, bookings, activeSessions)

	return &Monitor{
		metrics:        make(map[string]interface{}),
		startTime:      time.Now(),
		registry:       registry,
		chatReplies:    chatReplies,
		bookings:       bookings,
		activeSessions: activeSessions,
	}
}

// Registry exposes the Prometheus registry for the /metrics handler
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	metrics := make(map[string]interface{}, len(m.metrics)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// RecordReply counts a scripted reply for topic
func (m *Monitor) RecordReply(topic string) {
	m.chatReplies.WithLabelValues(topic).Inc()
	m.increment("chat_replies_" + topic)
}

// RecordBooking counts a booking submission
func (m *Monitor) RecordBooking(confirmed bool) {
	outcome := "incomplete"
	if confirmed {
		outcome = "confirmed"
	}
	m.bookings.WithLabelValues(outcome).Inc()
	m.increment("booking_" + outcome)
}

// SetActiveSessions records the number of open chat conversations
func (m *Monitor) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
	m.RecordMetric("chat_sessions_active", n)
}

func (m *Monitor) increment(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	n, _ := m.metrics[name].(int)
	m.metrics[name] = n + 1
}
