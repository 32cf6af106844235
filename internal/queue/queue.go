package queue

import "context"

// Transport is the push-capable sink the dispatcher targets. Destinations
// are addressed by name; provisioning, ordering and retry policy all belong
// to the transport, not to callers.
type Transport interface {
	Push(ctx context.Context, queue string, payload []byte) error
}
