// Package validation inspects a print specification and its source text and
// classifies the order with a sorted set of issue tags and a decision.
package validation

import (
	"slices"
	"strconv"
	"strings"

	"github.com/JaimeStill/estimator/internal/printspec"
)

// Issue tags.
const (
	IssueFreePricing             = "free_pricing"
	IssueInsufficientSpec        = "insufficient_spec"
	IssueInvalidQuantityFormat   = "invalid_quantity_format"
	IssueLowResolution           = "low_resolution"
	IssueBadDPIValue             = "bad_dpi_value"
	IssueMissingSize             = "missing_size"
	IssueInvalidSize             = "invalid_size"
	IssueInvalidSizeFormat       = "invalid_size_format"
	IssueMissingTurnaround       = "missing_turnaround"
	IssueInvalidTurnaround       = "invalid_turnaround"
	IssueInvalidTurnaroundFormat = "invalid_turnaround_format"
	IssueFinishingUnconfirmed    = "finishing_unconfirmed"
	IssueUrgentTurnaround        = "urgent_turnaround"

	PrefixMissingFields        = "missing_fields:"
	PrefixUnsupportedFinishing = "unsupported_finishing:"
)

const (
	minDPI           = 300
	maxTurnaroundDay = 365
)

// Result is the outcome of validating a specification.
type Result struct {
	Decision printspec.Decision `json:"decision"`
	Issues   []string           `json:"issues"`
}

type issueSet []string

func (s *issueSet) add(issue string) {
	if !slices.Contains(*s, issue) {
		*s = append(*s, issue)
	}
}

// Validate evaluates every check against spec and text. Issues are
// deduplicated and returned in lexicographic order.
func Validate(spec printspec.Specification, text string) Result {
	var issues issueSet
	txt := strings.ToLower(text)

	if len(spec.MissingFields) > 0 {
		missing := slices.Clone(spec.MissingFields)
		slices.Sort(missing)
		issues.add(PrefixMissingFields + strings.Join(missing, ","))
	}

	if strings.Contains(txt, "for free") ||
		strings.Contains(txt, " free ") ||
		strings.HasSuffix(strings.TrimSpace(txt), "free") {
		issues.add(IssueFreePricing)
	}

	if missingCritical(spec) >= 2 {
		issues.add(IssueInsufficientSpec)
	}

	if spec.MinDPI != nil {
		if dpi, ok := dpiValue(spec.MinDPI); !ok {
			issues.add(IssueBadDPIValue)
		} else if dpi < minDPI {
			issues.add(IssueLowResolution)
		}
	}

	if spec.MalformedQuantity != "" {
		issues.add(IssueInvalidQuantityFormat)
	}

	checkSize(&issues, spec.Size)
	checkTurnaround(&issues, spec)

	for _, f := range spec.Finishing {
		if !printspec.SupportedFinishing(f) {
			issues.add(PrefixUnsupportedFinishing + f)
		}
	}

	if len(spec.Finishing) == 0 ||
		(len(spec.Finishing) == 1 && spec.Finishing[0] == printspec.NoFinish) {
		issues.add(IssueFinishingUnconfirmed)
	}

	if spec.TurnaroundDays != nil && *spec.TurnaroundDays <= 1 {
		issues.add(IssueUrgentTurnaround)
	}

	sorted := []string(issues)
	if sorted == nil {
		sorted = []string{}
	}
	slices.Sort(sorted)

	return Result{
		Decision: decide(sorted),
		Issues:   sorted,
	}
}

// Rejecting reports whether issue belongs to the hard-failure class.
func Rejecting(issue string) bool {
	return strings.HasPrefix(issue, "invalid_") ||
		strings.HasPrefix(issue, "unsupported_finishing") ||
		issue == IssueFreePricing ||
		issue == IssueInsufficientSpec
}

func decide(issues []string) printspec.Decision {
	if slices.ContainsFunc(issues, Rejecting) {
		return printspec.Rejected
	}
	if len(issues) > 0 {
		return printspec.NeedsReview
	}
	return printspec.AutoApproved
}

func missingCritical(spec printspec.Specification) int {
	n := 0
	if printspec.StringValue(spec.ProductType) == "" {
		n++
	}
	if spec.QuantityValue() == 0 {
		n++
	}
	if printspec.StringValue(spec.Size) == "" {
		n++
	}
	return n
}

func checkSize(issues *issueSet, size *string) {
	s := printspec.StringValue(size)
	if s == "" {
		issues.add(IssueMissingSize)
		return
	}

	parts := strings.Split(s, "x")
	if len(parts) < 2 {
		issues.add(IssueInvalidSizeFormat)
		return
	}

	w, errW := parseDimension(parts[0])
	h, errH := parseDimension(parts[1])
	if errW != nil || errH != nil {
		issues.add(IssueInvalidSizeFormat)
		return
	}
	if w <= 0 || h <= 0 {
		issues.add(IssueInvalidSize)
	}
}

func parseDimension(part string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(part, "mm", "")), 64)
}

func checkTurnaround(issues *issueSet, spec printspec.Specification) {
	switch {
	case spec.MalformedTurnaround != "":
		issues.add(IssueInvalidTurnaroundFormat)
	case spec.TurnaroundDays == nil:
		issues.add(IssueMissingTurnaround)
	case *spec.TurnaroundDays <= 0 || *spec.TurnaroundDays > maxTurnaroundDay:
		issues.add(IssueInvalidTurnaround)
	}
}

func dpiValue(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
