package providers

import "testing"

func TestForName(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantName string
		wantErr  bool
	}{
		{"sendgrid", "sendgrid", "sendgrid", false},
		{"socketlabs", "socketlabs", "socketlabs", false},
		{"case and whitespace", " SendGrid ", "sendgrid", false},
		{"unsupported", "mailgun", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ForName(tt.provider)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForName(%q): %v", tt.provider, err)
			}
			if m.Name() != tt.wantName {
				t.Fatalf("name got %q want %q", m.Name(), tt.wantName)
			}
		})
	}
}
