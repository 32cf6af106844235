package socketlabs

import (
	"encoding/json"
	"strconv"

	"mailrelay/internal/model"
)

// event is the subset of the SocketLabs notification-webhook payload the
// relay reads. SocketLabs uses PascalCase field names on the wire.
type event struct {
	Type        string `json:"Type"`
	Address     string `json:"Address"`
	DateTime    string `json:"DateTime"`
	MessageID   string `json:"MessageId"`
	MailingID   string `json:"MailingId"`
	FailureCode int    `json:"FailureCode"`
	FailureType string `json:"FailureType"`
	Reason      string `json:"Reason"`
	Response    string `json:"Response"`
}

type Marshaller struct{}

func (Marshaller) Name() string { return "socketlabs" }

// Marshall maps SocketLabs notification types onto the canonical set:
// Failed becomes Bounce, Complaint becomes Complaint, Delivered becomes
// Delivery. Queued, Tracking and Validation notifications yield nil, as do
// unknown types, malformed payloads and events without a recipient address.
func (Marshaller) Marshall(raw json.RawMessage) *model.Event {
	var e event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil
	}
	if e.Address == "" {
		return nil
	}

	mail := &model.Mail{
		Timestamp: e.DateTime,
		MessageID: e.MessageID,
		Headers:   []model.Header{{Name: "To", Value: e.Address}},
	}

	switch e.Type {
	case "Failed":
		return &model.Event{
			NotificationType: model.TypeBounce,
			Mail:             mail,
			Bounce: &model.BounceRecord{
				BounceType:    bounceType(e.FailureType),
				BounceSubType: strconv.Itoa(e.FailureCode),
				BouncedRecipients: []model.Recipient{{
					EmailAddress:   e.Address,
					Action:         "failed",
					DiagnosticCode: e.Reason,
				}},
				Timestamp:  e.DateTime,
				FeedbackID: e.MessageID,
			},
		}
	case "Complaint":
		return &model.Event{
			NotificationType: model.TypeComplaint,
			Mail:             mail,
			Complaint: &model.ComplaintRecord{
				ComplainedRecipients:  []model.Recipient{{EmailAddress: e.Address}},
				ComplaintFeedbackType: "abuse",
				Timestamp:             e.DateTime,
				FeedbackID:            e.MessageID,
			},
		}
	case "Delivered":
		return &model.Event{
			NotificationType: model.TypeDelivery,
			Mail:             mail,
			Delivery: &model.DeliveryRecord{
				Recipients:   []string{e.Address},
				Timestamp:    e.DateTime,
				SMTPResponse: e.Response,
			},
		}
	default:
		return nil
	}
}

func bounceType(failureType string) string {
	if failureType == "Temporary" {
		return "Transient"
	}
	return "Permanent"
}
