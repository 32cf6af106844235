package sendgrid

import (
	"encoding/json"
	"time"

	"mailrelay/internal/model"
)

// event is the subset of the SendGrid event-webhook payload the relay reads.
type event struct {
	Event       string `json:"event"`
	Email       string `json:"email"`
	Timestamp   int64  `json:"timestamp"`
	SMTPID      string `json:"smtp-id"`
	SGEventID   string `json:"sg_event_id"`
	SGMessageID string `json:"sg_message_id"`
	Reason      string `json:"reason"`
	Response    string `json:"response"`
	Status      string `json:"status"`
	Type        string `json:"type"`
}

type Marshaller struct{}

func (Marshaller) Name() string { return "sendgrid" }

// Marshall maps SendGrid's event vocabulary onto the canonical notification
// types: bounce and dropped become Bounce, spamreport becomes Complaint,
// delivered becomes Delivery. Engagement and processing events (open, click,
// processed, deferred, unsubscribe, ...) are routine and yield nil, as do
// payloads without a recipient address.
func (Marshaller) Marshall(raw json.RawMessage) *model.Event {
	var e event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil
	}
	if e.Email == "" {
		return nil
	}

	timestamp := formatTimestamp(e.Timestamp)
	mail := &model.Mail{
		Timestamp: timestamp,
		MessageID: e.SGMessageID,
		Headers:   []model.Header{{Name: "To", Value: e.Email}},
	}

	switch e.Event {
	case "bounce":
		return &model.Event{
			NotificationType: model.TypeBounce,
			Mail:             mail,
			Bounce: &model.BounceRecord{
				BounceType: bounceType(e.Type),
				BouncedRecipients: []model.Recipient{{
					EmailAddress:   e.Email,
					Action:         "failed",
					Status:         e.Status,
					DiagnosticCode: e.Reason,
				}},
				Timestamp:  timestamp,
				FeedbackID: e.SGEventID,
			},
		}
	case "dropped":
		return &model.Event{
			NotificationType: model.TypeBounce,
			Mail:             mail,
			Bounce: &model.BounceRecord{
				BounceType:    "Permanent",
				BounceSubType: "Suppressed",
				BouncedRecipients: []model.Recipient{{
					EmailAddress:   e.Email,
					Action:         "failed",
					DiagnosticCode: e.Reason,
				}},
				Timestamp:  timestamp,
				FeedbackID: e.SGEventID,
			},
		}
	case "spamreport":
		return &model.Event{
			NotificationType: model.TypeComplaint,
			Mail:             mail,
			Complaint: &model.ComplaintRecord{
				ComplainedRecipients:  []model.Recipient{{EmailAddress: e.Email}},
				ComplaintFeedbackType: "abuse",
				Timestamp:             timestamp,
				FeedbackID:            e.SGEventID,
			},
		}
	case "delivered":
		return &model.Event{
			NotificationType: model.TypeDelivery,
			Mail:             mail,
			Delivery: &model.DeliveryRecord{
				Recipients:   []string{e.Email},
				Timestamp:    timestamp,
				SMTPResponse: e.Response,
			},
		}
	default:
		return nil
	}
}

// SendGrid marks blocks (full mailbox, greylisting) with type "blocked";
// everything else it reports as a hard bounce.
func bounceType(t string) string {
	if t == "blocked" {
		return "Transient"
	}
	return "Permanent"
}

func formatTimestamp(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
