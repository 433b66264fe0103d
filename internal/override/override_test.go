package override_test

import (
	"testing"

	"github.com/JaimeStill/estimator/internal/override"
	"github.com/JaimeStill/estimator/internal/printspec"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   printspec.Decision
		wantOK bool
	}{
		{"please send this to needs review", "please send this to needs review", printspec.NeedsReview, true},
		{"send to approved", "send to approved", printspec.AutoApproved, true},
		{"send to rejected", "send to rejected", printspec.Rejected, true},
		{"case insensitive", "PLEASE SEND THIS TO NEEDS_REVIEW", printspec.NeedsReview, true},
		{"auto approve underscore", "500 flyers, send to auto_approved", printspec.AutoApproved, true},
		{"auto approve hyphen", "send this to auto-approve", printspec.AutoApproved, true},
		{"bare review", "send review", printspec.NeedsReview, true},
		{"reject verb", "send to reject", printspec.Rejected, true},
		{"embedded in order text", "Need 250 business cards, 85x55mm. Please send to needs-review.", printspec.NeedsReview, true},
		{"review wins over reject", "send to rejected or send to review", printspec.NeedsReview, true},
		{"approve wins over reject", "send to rejected then send to approved", printspec.AutoApproved, true},
		{"plain text", "Need 250 business cards, 85x55mm, C300", "", false},
		{"mentions approval without imperative", "this was approved last week", "", false},
		{"partial word", "send to approvedness", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := override.Detect(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("decision = %q, want %q", got, tt.want)
			}
		})
	}
}
