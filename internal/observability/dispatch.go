package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DispatchMetrics counts per-event dispatch outcomes by notification type.
type DispatchMetrics struct {
	dispatchTotal *prometheus.CounterVec
}

func NewDispatchMetrics() *DispatchMetrics {
	return &DispatchMetrics{
		dispatchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mailrelay",
			Subsystem: "dispatch",
			Name:      "events_total",
			Help:      "Total number of events dispatched to outbound queues.",
		}, []string{"notification_type", "outcome"}),
	}
}

func (m *DispatchMetrics) Sent(notificationType string) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(notificationType, "sent").Inc()
}

func (m *DispatchMetrics) Failed(notificationType string) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(notificationType, "failed").Inc()
}
