// Package override detects explicit disposition instructions embedded in
// free-form order text, such as "please send this to needs review".
package override

import (
	"regexp"

	"github.com/JaimeStill/estimator/internal/printspec"
)

const imperative = `(?i)\b(send(?: this)?(?: to)?|please send(?: this)?(?: to)?)\s+`

type rule struct {
	pattern  *regexp.Regexp
	decision printspec.Decision
}

// Checked in order; the first match wins.
var rules = []rule{
	{
		pattern:  regexp.MustCompile(imperative + `(needs[_\-\s]?review|needs review|review)\b`),
		decision: printspec.NeedsReview,
	},
	{
		pattern:  regexp.MustCompile(imperative + `(auto[_\-\s]?approved|auto[_\-\s]?approve|approved)\b`),
		decision: printspec.AutoApproved,
	},
	{
		pattern:  regexp.MustCompile(imperative + `(rejected|reject(?:ed)?)\b`),
		decision: printspec.Rejected,
	},
}

// Detect returns the disposition forced by an explicit instruction in text.
// The boolean is false when text carries no instruction.
func Detect(text string) (printspec.Decision, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.decision, true
		}
	}
	return "", false
}
