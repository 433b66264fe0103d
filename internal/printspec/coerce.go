package printspec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FromMap builds a Specification from a decoded JSON object. Absent keys take
// type-correct defaults, numeric strings are read as integers, and scalar
// finishing or missing_fields values become one-element lists.
func FromMap(m map[string]any) Specification {
	s := Specification{
		ProductType:   optionalString(m[FieldProductType]),
		Size:          optionalString(m[FieldSize]),
		PaperType:     optionalString(m[FieldPaperType]),
		Color:         optionalString(m[FieldColor]),
		Finishing:     stringList(m[FieldFinishing]),
		Rush:          truthy(m[FieldRush]),
		MissingFields: stringList(m[FieldMissingFields]),
		MinDPI:        m[FieldMinDPI],
	}

	s.Quantity, s.MalformedQuantity = integerField(m[FieldQuantity])
	s.TurnaroundDays, s.MalformedTurnaround = integerField(m[FieldTurnaroundDays])

	return s
}

// integerField reads v as an integer. A non-nil value that cannot be read is
// returned in its printed form instead.
func integerField(v any) (*int, string) {
	if v == nil {
		return nil, ""
	}
	if n := optionalInt(v); n != nil {
		return n, ""
	}
	return nil, fmt.Sprint(v)
}

func optionalString(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return ptr(t)
	case float64:
		return ptr(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return ptr(fmt.Sprint(t))
	}
}

func optionalInt(v any) *int {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || t < math.MinInt32 || t > math.MaxInt32 {
			return nil
		}
		return ptr(int(t))
	case int:
		if t < math.MinInt32 || t > math.MaxInt32 {
			return nil
		}
		return ptr(t)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 32)
		if err != nil {
			return nil
		}
		return ptr(int(n))
	}
	return nil
}

func stringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case []string:
		return append([]string{}, t...)
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{fmt.Sprint(t)}
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	return false
}
