package pricing_test

import (
	"math"
	"testing"

	"github.com/JaimeStill/estimator/internal/pricing"
	"github.com/JaimeStill/estimator/internal/printspec"
)

func ptr[T any](v T) *T {
	return &v
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name          string
		spec          printspec.Specification
		wantProcess   string
		wantUnit      float64
		wantSetup     float64
		wantFinishing float64
		wantRush      float64
		wantFinal     float64
	}{
		{
			name: "business cards with lamination and rush",
			spec: printspec.Specification{
				Quantity:  ptr(250),
				PaperType: ptr("C300"),
				Finishing: []string{"lamination"},
				Rush:      true,
			},
			wantProcess:   pricing.Digital,
			wantUnit:      0.05,
			wantSetup:     10,
			wantFinishing: 5,
			wantRush:      0.2,
			wantFinal:     38.5,
		},
		{
			name: "flyers without finishing",
			spec: printspec.Specification{
				Quantity:  ptr(100),
				PaperType: ptr("C350"),
				Finishing: []string{"none"},
			},
			wantProcess: pricing.Digital,
			wantUnit:    0.06,
			wantSetup:   10,
			wantFinal:   19.2,
		},
		{
			name: "offset at threshold",
			spec: printspec.Specification{
				Quantity:  ptr(1000),
				PaperType: ptr("standard"),
				Finishing: []string{"spot_uv"},
			},
			wantProcess:   pricing.Offset,
			wantUnit:      0.04,
			wantSetup:     50,
			wantFinishing: 50,
			wantFinal:     168,
		},
		{
			name: "unknown paper and finishing",
			spec: printspec.Specification{
				Quantity:  ptr(10),
				PaperType: ptr("C999"),
				Finishing: []string{"foil", "die_cut"},
			},
			wantProcess:   pricing.Digital,
			wantUnit:      0.04,
			wantSetup:     10,
			wantFinishing: 1,
			wantFinal:     13.68,
		},
		{
			name:        "empty specification",
			spec:        printspec.Specification{},
			wantProcess: pricing.Digital,
			wantUnit:    0.04,
			wantSetup:   10,
			wantFinal:   12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Estimate(tt.spec)

			if got.Process != tt.wantProcess {
				t.Errorf("process = %q, want %q", got.Process, tt.wantProcess)
			}
			if !approx(got.MaterialUnit, tt.wantUnit) {
				t.Errorf("material_unit = %v, want %v", got.MaterialUnit, tt.wantUnit)
			}
			if got.SetupCost != tt.wantSetup {
				t.Errorf("setup_cost = %v, want %v", got.SetupCost, tt.wantSetup)
			}
			if !approx(got.FinishingCost, tt.wantFinishing) {
				t.Errorf("finishing_cost = %v, want %v", got.FinishingCost, tt.wantFinishing)
			}
			if got.RushSurchargePct != tt.wantRush {
				t.Errorf("rush_surcharge_pct = %v, want %v", got.RushSurchargePct, tt.wantRush)
			}
			if got.MarginPct != pricing.MarginPct {
				t.Errorf("margin_pct = %v, want %v", got.MarginPct, pricing.MarginPct)
			}
			if !approx(got.FinalPrice, tt.wantFinal) {
				t.Errorf("final_price = %v, want %v", got.FinalPrice, tt.wantFinal)
			}
		})
	}
}

func TestEstimateBreakdown(t *testing.T) {
	got := pricing.Estimate(printspec.Specification{
		Quantity:  ptr(500),
		PaperType: ptr("C300"),
		Finishing: []string{"lamination", "die_cut"},
		Rush:      true,
	})

	base := got.MaterialCost + got.SetupCost + got.FinishingCost
	if !approx(got.Breakdown.Base, base) {
		t.Errorf("base = %v, want %v", got.Breakdown.Base, base)
	}
	if !approx(got.Breakdown.MarginAmount, base*0.2) {
		t.Errorf("margin_amount = %v, want %v", got.Breakdown.MarginAmount, base*0.2)
	}
	if !approx(got.Breakdown.RushAmount, base*0.2) {
		t.Errorf("rush_amount = %v, want %v", got.Breakdown.RushAmount, base*0.2)
	}
	want := math.Round(base*(1+pricing.MarginPct+pricing.RushPct)*100) / 100
	if !approx(got.FinalPrice, want) {
		t.Errorf("final_price = %v, want %v", got.FinalPrice, want)
	}
}

func TestEstimateProperties(t *testing.T) {
	finishings := [][]string{nil, {"none"}, {"lamination"}, {"spot_uv", "die_cut"}}
	papers := []string{"C300", "C350", "standard", "X1"}

	for _, paper := range papers {
		for _, fin := range finishings {
			for _, rush := range []bool{false, true} {
				prev := -1.0
				for _, qty := range []int{0, 1, 50, 999, 1000, 1001, 5000} {
					got := pricing.Estimate(printspec.Specification{
						Quantity:  ptr(qty),
						PaperType: ptr(paper),
						Finishing: fin,
						Rush:      rush,
					})

					if (got.Process == pricing.Offset) != (qty >= 1000) {
						t.Errorf("qty %d: process = %s", qty, got.Process)
					}
					if got.FinalPrice < 0 {
						t.Errorf("qty %d: negative price %v", qty, got.FinalPrice)
					}
					if got.FinalPrice < prev {
						t.Errorf("qty %d: price %v decreased from %v", qty, got.FinalPrice, prev)
					}
					prev = got.FinalPrice
				}
			}
		}
	}
}
