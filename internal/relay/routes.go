package relay

import (
	"fmt"

	"mailrelay/internal/model"
)

const queuePrefix = "email"

// Routes maps notification types to environment-suffixed queue names. The
// mapping is computed once at startup and read concurrently afterwards.
type Routes struct {
	byType map[model.NotificationType]string
}

func NewRoutes(suffix string) Routes {
	return Routes{byType: map[model.NotificationType]string{
		model.TypeBounce:    fmt.Sprintf("%s-bounce-%s", queuePrefix, suffix),
		model.TypeComplaint: fmt.Sprintf("%s-complaint-%s", queuePrefix, suffix),
		model.TypeDelivery:  fmt.Sprintf("%s-delivery-%s", queuePrefix, suffix),
	}}
}

// Resolve returns the destination queue for a notification type. Marshallers
// only emit the canonical types, so a miss here means a broken marshaller;
// the caller treats it as that event's failure rather than pushing to an
// undefined destination.
func (r Routes) Resolve(t model.NotificationType) (string, error) {
	name, ok := r.byType[t]
	if !ok {
		return "", fmt.Errorf("no queue route for notification type %q", t)
	}
	return name, nil
}

// Names returns the configured queue names, for startup logging.
func (r Routes) Names() []string {
	names := make([]string, 0, len(r.byType))
	for _, t := range model.Types() {
		if name, ok := r.byType[t]; ok {
			names = append(names, name)
		}
	}
	return names
}
