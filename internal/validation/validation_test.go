package validation_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/internal/validation"
)

func ptr[T any](v T) *T {
	return &v
}

// complete returns a specification that passes every check.
func complete() printspec.Specification {
	return printspec.Specification{
		ProductType:    ptr("business_card"),
		Quantity:       ptr(250),
		Size:           ptr("85x55mm"),
		PaperType:      ptr("C300"),
		Color:          ptr("4/4"),
		Finishing:      []string{"lamination"},
		TurnaroundDays: ptr(3),
		MissingFields:  []string{},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *printspec.Specification)
		text     string
		decision printspec.Decision
		issues   []string
	}{
		{
			name:     "complete spec auto approves",
			mutate:   func(s *printspec.Specification) {},
			decision: printspec.AutoApproved,
			issues:   []string{},
		},
		{
			name:     "missing fields sorted into one tag",
			mutate:   func(s *printspec.Specification) { s.MissingFields = []string{"size", "paper_type", "quantity"} },
			decision: printspec.NeedsReview,
			issues:   []string{"missing_fields:paper_type,quantity,size"},
		},
		{
			name:     "for free rejects",
			mutate:   func(s *printspec.Specification) {},
			text:     "Print these for free please",
			decision: printspec.Rejected,
			issues:   []string{"free_pricing"},
		},
		{
			name:     "trailing free rejects",
			mutate:   func(s *printspec.Specification) {},
			text:     "250 cards, FREE",
			decision: printspec.Rejected,
			issues:   []string{"free_pricing"},
		},
		{
			name: "insufficient spec",
			mutate: func(s *printspec.Specification) {
				s.ProductType = nil
				s.Quantity = nil
			},
			decision: printspec.Rejected,
			issues:   []string{"insufficient_spec"},
		},
		{
			name:     "low resolution",
			mutate:   func(s *printspec.Specification) { s.MinDPI = float64(150) },
			decision: printspec.NeedsReview,
			issues:   []string{"low_resolution"},
		},
		{
			name:     "numeric string dpi accepted",
			mutate:   func(s *printspec.Specification) { s.MinDPI = "300" },
			decision: printspec.AutoApproved,
			issues:   []string{},
		},
		{
			name:     "bad dpi value",
			mutate:   func(s *printspec.Specification) { s.MinDPI = "high" },
			decision: printspec.NeedsReview,
			issues:   []string{"bad_dpi_value"},
		},
		{
			name: "malformed quantity",
			mutate: func(s *printspec.Specification) {
				s.Quantity = nil
				s.MalformedQuantity = "1e+20"
			},
			decision: printspec.Rejected,
			issues:   []string{"invalid_quantity_format"},
		},
		{
			name:     "negative quantity is not flagged",
			mutate:   func(s *printspec.Specification) { s.Quantity = ptr(-5000) },
			decision: printspec.AutoApproved,
			issues:   []string{},
		},
		{
			name:     "missing size",
			mutate:   func(s *printspec.Specification) { s.Size = nil },
			decision: printspec.NeedsReview,
			issues:   []string{"missing_size"},
		},
		{
			name:     "size without separator",
			mutate:   func(s *printspec.Specification) { s.Size = ptr("A4") },
			decision: printspec.Rejected,
			issues:   []string{"invalid_size_format"},
		},
		{
			name:     "size with unparseable part",
			mutate:   func(s *printspec.Specification) { s.Size = ptr("85xabc") },
			decision: printspec.Rejected,
			issues:   []string{"invalid_size_format"},
		},
		{
			name:     "zero size",
			mutate:   func(s *printspec.Specification) { s.Size = ptr("0x55mm") },
			decision: printspec.Rejected,
			issues:   []string{"invalid_size"},
		},
		{
			name:     "missing turnaround",
			mutate:   func(s *printspec.Specification) { s.TurnaroundDays = nil },
			decision: printspec.NeedsReview,
			issues:   []string{"missing_turnaround"},
		},
		{
			name:     "turnaround beyond a year",
			mutate:   func(s *printspec.Specification) { s.TurnaroundDays = ptr(400) },
			decision: printspec.Rejected,
			issues:   []string{"invalid_turnaround"},
		},
		{
			name: "malformed turnaround",
			mutate: func(s *printspec.Specification) {
				s.TurnaroundDays = nil
				s.MalformedTurnaround = "asap"
			},
			decision: printspec.Rejected,
			issues:   []string{"invalid_turnaround_format"},
		},
		{
			name:     "zero turnaround is invalid and urgent",
			mutate:   func(s *printspec.Specification) { s.TurnaroundDays = ptr(0) },
			decision: printspec.Rejected,
			issues:   []string{"invalid_turnaround", "urgent_turnaround"},
		},
		{
			name:     "one day turnaround is urgent",
			mutate:   func(s *printspec.Specification) { s.TurnaroundDays = ptr(1) },
			decision: printspec.NeedsReview,
			issues:   []string{"urgent_turnaround"},
		},
		{
			name:     "unsupported finishing",
			mutate:   func(s *printspec.Specification) { s.Finishing = []string{"lamination", "foil"} },
			decision: printspec.Rejected,
			issues:   []string{"unsupported_finishing:foil"},
		},
		{
			name:     "none finishing is unconfirmed",
			mutate:   func(s *printspec.Specification) { s.Finishing = []string{"none"} },
			decision: printspec.NeedsReview,
			issues:   []string{"finishing_unconfirmed"},
		},
		{
			name:     "empty finishing is unconfirmed",
			mutate:   func(s *printspec.Specification) { s.Finishing = []string{} },
			decision: printspec.NeedsReview,
			issues:   []string{"finishing_unconfirmed"},
		},
		{
			name:     "duplicate unsupported finishing reported once",
			mutate:   func(s *printspec.Specification) { s.Finishing = []string{"foil", "foil"} },
			decision: printspec.Rejected,
			issues:   []string{"unsupported_finishing:foil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := complete()
			tt.mutate(&spec)

			got := validation.Validate(spec, tt.text)

			if got.Decision != tt.decision {
				t.Errorf("decision = %q, want %q", got.Decision, tt.decision)
			}
			if diff := cmp.Diff(tt.issues, got.Issues); diff != "" {
				t.Errorf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateUnparseable(t *testing.T) {
	got := validation.Validate(printspec.Unparseable(), "")

	want := []string{
		"finishing_unconfirmed",
		"insufficient_spec",
		"missing_fields:parse_error",
		"missing_size",
		"missing_turnaround",
	}
	if diff := cmp.Diff(want, got.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
	if got.Decision != printspec.Rejected {
		t.Errorf("decision = %q, want rejected", got.Decision)
	}
}

func TestValidateProperties(t *testing.T) {
	specs := []printspec.Specification{
		complete(),
		printspec.Insufficient(),
		printspec.Unparseable(),
		{Finishing: []string{"foil", "lamination", "foil"}, MissingFields: []string{"size"}},
		{Quantity: ptr(10), Size: ptr("x"), Finishing: []string{"none"}, TurnaroundDays: ptr(-2)},
	}
	texts := []string{"", "for free", "Need 250 business cards", "free"}

	for i, spec := range specs {
		for _, text := range texts {
			got := validation.Validate(spec, text)

			if !slices.IsSorted(got.Issues) {
				t.Errorf("spec %d text %q: issues not sorted: %v", i, text, got.Issues)
			}
			if len(slices.Compact(slices.Clone(got.Issues))) != len(got.Issues) {
				t.Errorf("spec %d text %q: duplicate issues: %v", i, text, got.Issues)
			}
			if len(spec.MissingFields) > 0 && got.Decision == printspec.AutoApproved {
				t.Errorf("spec %d text %q: missing fields auto approved", i, text)
			}
			for _, f := range spec.Finishing {
				if !printspec.SupportedFinishing(f) && got.Decision != printspec.Rejected {
					t.Errorf("spec %d text %q: unsupported finishing not rejected", i, text)
				}
			}
			for _, issue := range got.Issues {
				if strings.HasPrefix(issue, "invalid_") && got.Decision != printspec.Rejected {
					t.Errorf("spec %d text %q: %s not rejected", i, text, issue)
				}
			}
		}
	}
}
