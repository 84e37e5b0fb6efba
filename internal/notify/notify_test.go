package notify

import "testing"

// Urgency constants must match the freedesktop notification spec.
func TestUrgencyValues(t *testing.T) {
	tests := []struct {
		urgency Urgency
		want    byte
	}{
		{UrgencyLow, 0},
		{UrgencyNormal, 1},
		{UrgencyCritical, 2},
	}
	for _, tt := range tests {
		if byte(tt.urgency) != tt.want {
			t.Errorf("urgency = %d, want %d", tt.urgency, tt.want)
		}
	}
}
