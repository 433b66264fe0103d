package extraction

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/estimator/internal/printspec"
)

var (
	quantityRe   = regexp.MustCompile(`\b(\d{1,6})\b`)
	sizeRe       = regexp.MustCompile(`(\d{2,4}\s*[x×]\s*\d{2,4}(?:mm)?)`)
	paperRe      = regexp.MustCompile(`\b(c\d{3})\b`)
	colorRe      = regexp.MustCompile(`\b(\d+/\d+)\b`)
	turnaroundRe = regexp.MustCompile(`(\d{1,3})\s*(day|days)`)
	rushRe       = regexp.MustCompile(`\b(rush|urgent)\b`)
)

var jobKeywords = []string{"print", "flyer", "business", "card", "please", "brochure"}

const minDescriptiveLength = 30

// Defaults applied when the heuristic parser cannot find a value.
const (
	DefaultQuantity   = 100
	DefaultSize       = "85x55mm"
	DefaultPaper      = "C300"
	DefaultColor      = "4/4"
	DefaultTurnaround = 3
)

// Heuristic is a regex-based completion source used when no external backend
// is configured or the configured backend fails.
type Heuristic struct{}

// Submit parses the order text that follows Preamble in prompt and returns the
// specification encoded as JSON.
func (Heuristic) Submit(ctx context.Context, prompt string) (string, error) {
	text := strings.TrimPrefix(prompt, Prompt(""))
	b, err := json.Marshal(ParseHeuristic(text))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseHeuristic derives a specification from order text with regular
// expressions. Short text without any job keyword yields the insufficient
// specification. Absent quantity, size and paper are defaulted and listed in
// MissingFields.
func ParseHeuristic(text string) printspec.Specification {
	txt := strings.ToLower(text)

	if utf8.RuneCountInString(txt) < minDescriptiveLength && !containsAny(txt, jobKeywords) {
		return printspec.Insufficient()
	}

	quantity := firstInt(quantityRe, txt)
	size := strings.ReplaceAll(firstMatch(sizeRe, txt), " ", "")
	paper := strings.ToUpper(firstMatch(paperRe, txt))
	color := firstMatch(colorRe, txt)
	turnaround := firstInt(turnaroundRe, txt)

	missing := []string{}
	if quantity == 0 {
		missing = append(missing, printspec.FieldQuantity)
		quantity = DefaultQuantity
	}
	if size == "" {
		missing = append(missing, printspec.FieldSize)
		size = DefaultSize
	}
	if paper == "" {
		missing = append(missing, printspec.FieldPaperType)
		paper = DefaultPaper
	}
	if color == "" {
		color = DefaultColor
	}
	if turnaround == 0 {
		turnaround = DefaultTurnaround
	}

	return printspec.Specification{
		ProductType:    productType(txt),
		Quantity:       &quantity,
		Size:           &size,
		PaperType:      &paper,
		Color:          &color,
		Finishing:      finishing(txt),
		TurnaroundDays: &turnaround,
		Rush:           rushRe.MatchString(txt),
		MissingFields:  missing,
	}
}

func productType(txt string) *string {
	var pt string
	switch {
	case strings.Contains(txt, "card"):
		pt = "business_card"
	case strings.Contains(txt, "flyer"):
		pt = "flyer"
	default:
		return nil
	}
	return &pt
}

func finishing(txt string) []string {
	var out []string
	if strings.Contains(txt, "lamination") {
		out = append(out, printspec.Lamination)
	}
	if containsAny(txt, []string{"spot uv", "spot_uv", "spotuv"}) {
		out = append(out, printspec.SpotUV)
	}
	if containsAny(txt, []string{"die cut", "die_cut"}) {
		out = append(out, printspec.DieCut)
	}
	if len(out) == 0 {
		return []string{printspec.NoFinish}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func firstInt(re *regexp.Regexp, s string) int {
	n, err := strconv.Atoi(firstMatch(re, s))
	if err != nil {
		return 0
	}
	return n
}
