package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"mailrelay/internal/model"
	"mailrelay/internal/providers/sendgrid"
	"mailrelay/internal/providers/socketlabs"
)

// Marshaller converts one raw provider payload into a canonical event.
// A nil result means the payload is not one the relay cares about: event
// types outside the provider's delivery-status vocabulary and malformed
// payloads are dropped silently, never surfaced as errors.
type Marshaller interface {
	Name() string
	Marshall(raw json.RawMessage) *model.Event
}

// ForName selects the marshaller for a configured provider. The provider set
// is closed; anything else is a configuration error.
func ForName(name string) (Marshaller, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sendgrid":
		return sendgrid.Marshaller{}, nil
	case "socketlabs":
		return socketlabs.Marshaller{}, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q: supported providers are sendgrid, socketlabs", name)
	}
}
