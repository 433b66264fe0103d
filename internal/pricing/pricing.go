// Package pricing computes a rule-based cost estimate for a print specification.
package pricing

import (
	"math"

	"github.com/JaimeStill/estimator/internal/printspec"
)

// Production processes.
const (
	Digital = "digital"
	Offset  = "offset"
)

const (
	offsetThreshold = 1000
	standardPaper   = "standard"

	// MarginPct is applied to every estimate.
	MarginPct = 0.2
	// RushPct is added on top of the margin for rush orders.
	RushPct = 0.2
)

var materialUnit = map[string]float64{
	"C300":        0.05,
	"C350":        0.06,
	standardPaper: 0.04,
}

var setupCost = map[string]float64{
	Digital: 10,
	Offset:  50,
}

var finishingUnit = map[string]float64{
	printspec.Lamination: 0.02,
	printspec.SpotUV:     0.05,
	printspec.DieCut:     0.10,
	printspec.NoFinish:   0,
}

// Breakdown splits the final price into its base and surcharges.
type Breakdown struct {
	Base         float64 `json:"base"`
	MarginAmount float64 `json:"margin_amount"`
	RushAmount   float64 `json:"rush_amount"`
}

// Result is a priced estimate.
type Result struct {
	Process          string    `json:"process"`
	MaterialUnit     float64   `json:"material_unit"`
	MaterialCost     float64   `json:"material_cost"`
	SetupCost        float64   `json:"setup_cost"`
	FinishingCost    float64   `json:"finishing_cost"`
	MarginPct        float64   `json:"margin_pct"`
	RushSurchargePct float64   `json:"rush_surcharge_pct"`
	FinalPrice       float64   `json:"final_price"`
	Breakdown        Breakdown `json:"breakdown"`
}

// Process selects the production process for a quantity.
func Process(quantity int) string {
	if quantity < offsetThreshold {
		return Digital
	}
	return Offset
}

// Estimate prices spec. It is total: absent quantity counts as zero, unknown
// paper codes use the standard rate and unknown finishing costs nothing.
func Estimate(spec printspec.Specification) Result {
	qty := float64(spec.QuantityValue())
	process := Process(spec.QuantityValue())

	unit, ok := materialUnit[printspec.StringValue(spec.PaperType)]
	if !ok {
		unit = materialUnit[standardPaper]
	}
	material := unit * qty
	setup := setupCost[process]

	finishing := spec.Finishing
	if len(finishing) == 0 {
		finishing = []string{printspec.NoFinish}
	}
	var finishingCost float64
	for _, f := range finishing {
		finishingCost += finishingUnit[f] * qty
	}

	rush := 0.0
	if spec.Rush {
		rush = RushPct
	}

	base := material + setup + finishingCost

	return Result{
		Process:          process,
		MaterialUnit:     unit,
		MaterialCost:     material,
		SetupCost:        setup,
		FinishingCost:    finishingCost,
		MarginPct:        MarginPct,
		RushSurchargePct: rush,
		FinalPrice:       round2(base * (1 + MarginPct + rush)),
		Breakdown: Breakdown{
			Base:         base,
			MarginAmount: base * MarginPct,
			RushAmount:   base * rush,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
