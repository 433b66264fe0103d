// Package printspec defines the structured print-job specification shared by
// extraction, validation, pricing, and disposition, along with the disposition
// tokens they exchange.
package printspec

import "encoding/json"

// Decision is an order disposition token.
type Decision string

const (
	AutoApproved Decision = "auto_approved"
	NeedsReview  Decision = "needs_review"
	Rejected     Decision = "rejected"
)

// Decisions lists every disposition token.
var Decisions = []Decision{AutoApproved, NeedsReview, Rejected}

// Valid reports whether d is a known disposition token.
func (d Decision) Valid() bool {
	switch d {
	case AutoApproved, NeedsReview, Rejected:
		return true
	}
	return false
}

// Finishing options accepted by validation and pricing.
const (
	Lamination = "lamination"
	SpotUV     = "spot_uv"
	DieCut     = "die_cut"
	NoFinish   = "none"
)

// SupportedFinishing reports whether name is in the closed finishing set.
func SupportedFinishing(name string) bool {
	switch name {
	case Lamination, SpotUV, DieCut, NoFinish:
		return true
	}
	return false
}

// Field names as they appear in JSON and in missing_fields.
const (
	FieldProductType    = "product_type"
	FieldQuantity       = "quantity"
	FieldSize           = "size"
	FieldPaperType      = "paper_type"
	FieldColor          = "color"
	FieldFinishing      = "finishing"
	FieldTurnaroundDays = "turnaround_days"
	FieldRush           = "rush"
	FieldMissingFields  = "missing_fields"
	FieldMinDPI         = "min_dpi"

	// ParseError marks a specification whose source text could not be decoded.
	ParseError = "parse_error"
)

// Keys lists the nine schema keys every normalized specification carries.
var Keys = []string{
	FieldProductType,
	FieldQuantity,
	FieldSize,
	FieldPaperType,
	FieldColor,
	FieldFinishing,
	FieldTurnaroundDays,
	FieldRush,
	FieldMissingFields,
}

// Specification describes a print job derived from raw order text.
// Finishing and MissingFields are never nil once normalized.
//
// MinDPI is carried untyped so validation can distinguish numeric and
// non-numeric values. MalformedQuantity and MalformedTurnaround hold values
// that were supplied but could not be read as a 32-bit integer.
type Specification struct {
	ProductType    *string  `json:"product_type"`
	Quantity       *int     `json:"quantity"`
	Size           *string  `json:"size"`
	PaperType      *string  `json:"paper_type"`
	Color          *string  `json:"color"`
	Finishing      []string `json:"finishing"`
	TurnaroundDays *int     `json:"turnaround_days"`
	Rush           bool     `json:"rush"`
	MissingFields  []string `json:"missing_fields"`
	MinDPI         any      `json:"min_dpi,omitempty"`

	MalformedQuantity   string `json:"-"`
	MalformedTurnaround string `json:"-"`
}

// Insufficient returns the specification produced for text too short and
// keyword-free to describe a job.
func Insufficient() Specification {
	return Specification{
		Finishing:     []string{},
		MissingFields: []string{FieldProductType, FieldQuantity, FieldSize},
	}
}

// Unparseable returns the specification produced when the completion output
// could not be decoded.
func Unparseable() Specification {
	return Specification{
		Finishing:     []string{},
		MissingFields: []string{ParseError},
	}
}

// QuantityValue returns the quantity or zero when absent.
func (s Specification) QuantityValue() int {
	if s.Quantity == nil {
		return 0
	}
	return *s.Quantity
}

// StringValue dereferences an optional string field, returning "" when nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// MarshalJSON guarantees finishing and missing_fields encode as lists.
func (s Specification) MarshalJSON() ([]byte, error) {
	type plain Specification
	p := plain(s)
	if p.Finishing == nil {
		p.Finishing = []string{}
	}
	if p.MissingFields == nil {
		p.MissingFields = []string{}
	}
	return json.Marshal(p)
}

// UnmarshalJSON decodes a loosely typed JSON object, coercing each field with
// FromMap. Non-object input is an error.
func (s *Specification) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = FromMap(m)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
