package socketlabs

import (
	"encoding/json"
	"testing"

	"mailrelay/internal/model"
)

func TestMarshallMapsNotificationTypes(t *testing.T) {
	tests := []struct {
		typ  string
		want model.NotificationType
	}{
		{"Failed", model.TypeBounce},
		{"Complaint", model.TypeComplaint},
		{"Delivered", model.TypeDelivery},
	}

	m := Marshaller{}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			raw := []byte(`{"Type":"` + tt.typ + `","Address":"test@example.com","DateTime":"2026-02-16T10:00:00Z","MessageId":"sl-1"}`)
			got := m.Marshall(raw)
			if got == nil {
				t.Fatalf("expected event for %q, got nil", tt.typ)
			}
			if got.NotificationType != tt.want {
				t.Fatalf("notification type got %s want %s", got.NotificationType, tt.want)
			}
		})
	}
}

func TestMarshallDropsIrrelevantTypes(t *testing.T) {
	m := Marshaller{}
	for _, typ := range []string{"Queued", "Tracking", "Validation", "Unknown", ""} {
		raw := []byte(`{"Type":"` + typ + `","Address":"test@example.com"}`)
		if got := m.Marshall(raw); got != nil {
			t.Fatalf("expected nil for type %q, got %+v", typ, got)
		}
	}
}

func TestMarshallDropsMalformedPayloads(t *testing.T) {
	m := Marshaller{}
	for _, raw := range []string{`[]`, `"Delivered"`, `{"Type":"Failed"}`, `{broken`} {
		if got := m.Marshall(json.RawMessage(raw)); got != nil {
			t.Fatalf("expected nil for %s, got %+v", raw, got)
		}
	}
}

func TestMarshallFailureDetail(t *testing.T) {
	raw := []byte(`{
		"Type": "Failed",
		"Address": "bounced@example.com",
		"DateTime": "2026-02-16T10:00:00Z",
		"MessageId": "sl-fail-1",
		"FailureCode": 1003,
		"FailureType": "Temporary",
		"Reason": "mailbox unavailable"
	}`)
	got := (Marshaller{}).Marshall(raw)
	if got == nil || got.Bounce == nil {
		t.Fatal("expected bounce record")
	}
	if got.Bounce.BounceType != "Transient" {
		t.Fatalf("bounce type got %q want Transient", got.Bounce.BounceType)
	}
	if got.Bounce.BounceSubType != "1003" {
		t.Fatalf("bounce subtype got %q want 1003", got.Bounce.BounceSubType)
	}
	if got.Bounce.BouncedRecipients[0].DiagnosticCode != "mailbox unavailable" {
		t.Fatalf("unexpected diagnostic code: %q", got.Bounce.BouncedRecipients[0].DiagnosticCode)
	}
}

func TestMarshallPermanentFailure(t *testing.T) {
	raw := []byte(`{"Type":"Failed","Address":"gone@example.com","FailureType":"Permanent","FailureCode":2001}`)
	got := (Marshaller{}).Marshall(raw)
	if got == nil || got.Bounce == nil {
		t.Fatal("expected bounce record")
	}
	if got.Bounce.BounceType != "Permanent" {
		t.Fatalf("bounce type got %q want Permanent", got.Bounce.BounceType)
	}
}
