package model

// NotificationType is the only routing key used downstream of marshalling.
type NotificationType string

const (
	TypeBounce    NotificationType = "Bounce"
	TypeComplaint NotificationType = "Complaint"
	TypeDelivery  NotificationType = "Delivery"
)

func (t NotificationType) Valid() bool {
	switch t {
	case TypeBounce, TypeComplaint, TypeDelivery:
		return true
	}
	return false
}

// Types lists the canonical notification types in routing order.
func Types() []NotificationType {
	return []NotificationType{TypeBounce, TypeComplaint, TypeDelivery}
}

// Event is the canonical, provider-independent shape of a delivery-status
// update. It mirrors the SES notification format the downstream queue
// consumers already understand: exactly one of Bounce, Complaint or Delivery
// is set, matching NotificationType. Events are built by a provider
// marshaller, pushed once, and never persisted.
type Event struct {
	NotificationType NotificationType `json:"notificationType"`
	Mail             *Mail            `json:"mail,omitempty"`
	Bounce           *BounceRecord    `json:"bounce,omitempty"`
	Complaint        *ComplaintRecord `json:"complaint,omitempty"`
	Delivery         *DeliveryRecord  `json:"delivery,omitempty"`
}

type Mail struct {
	Timestamp string   `json:"timestamp,omitempty"`
	MessageID string   `json:"messageId,omitempty"`
	Headers   []Header `json:"headers,omitempty"`
}

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Recipient struct {
	EmailAddress   string `json:"emailAddress"`
	Action         string `json:"action,omitempty"`
	Status         string `json:"status,omitempty"`
	DiagnosticCode string `json:"diagnosticCode,omitempty"`
}

type BounceRecord struct {
	BounceType        string      `json:"bounceType"`
	BounceSubType     string      `json:"bounceSubType,omitempty"`
	BouncedRecipients []Recipient `json:"bouncedRecipients"`
	Timestamp         string      `json:"timestamp,omitempty"`
	FeedbackID        string      `json:"feedbackId,omitempty"`
}

type ComplaintRecord struct {
	ComplainedRecipients  []Recipient `json:"complainedRecipients"`
	ComplaintFeedbackType string      `json:"complaintFeedbackType,omitempty"`
	Timestamp             string      `json:"timestamp,omitempty"`
	FeedbackID            string      `json:"feedbackId,omitempty"`
}

type DeliveryRecord struct {
	Recipients   []string `json:"recipients"`
	Timestamp    string   `json:"timestamp,omitempty"`
	SMTPResponse string   `json:"smtpResponse,omitempty"`
}
