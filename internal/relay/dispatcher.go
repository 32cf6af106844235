package relay

import (
	"context"
	"encoding/json"
	"fmt"

	"mailrelay/internal/model"
	"mailrelay/internal/observability"
	"mailrelay/internal/queue"

	"github.com/go-logr/logr"
)

// Dispatcher resolves an event's destination queue and pushes it there.
// Failures are logged with full detail and returned as the event's outcome;
// retry belongs to the queue transport or the caller, never here.
type Dispatcher struct {
	routes    Routes
	transport queue.Transport
	logger    logr.Logger
	metrics   *observability.DispatchMetrics
}

func NewDispatcher(routes Routes, transport queue.Transport, logger logr.Logger, metrics *observability.DispatchMetrics) *Dispatcher {
	return &Dispatcher{
		routes:    routes,
		transport: transport,
		logger:    logger,
		metrics:   metrics,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev *model.Event) error {
	notificationType := string(ev.NotificationType)

	queueName, err := d.routes.Resolve(ev.NotificationType)
	if err != nil {
		d.logger.Error(err, "failed to route event", "notification_type", notificationType)
		d.metrics.Failed(notificationType)
		return err
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		d.logger.Error(err, "failed to encode event", "notification_type", notificationType, "queue", queueName)
		d.metrics.Failed(notificationType)
		return fmt.Errorf("encode event for %s: %w", queueName, err)
	}

	if err := d.transport.Push(ctx, queueName, payload); err != nil {
		d.logger.Error(err, "failed to send event", "notification_type", notificationType, "queue", queueName, "event", string(payload))
		d.metrics.Failed(notificationType)
		return fmt.Errorf("push to %s: %w", queueName, err)
	}

	d.logger.Info("sent", "notification_type", notificationType, "queue", queueName)
	d.metrics.Sent(notificationType)
	return nil
}
