// Package extraction turns raw order text into a normalized print
// specification using a completion backend, falling back to a regex heuristic
// when no backend is configured or the backend fails.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/estimator/internal/llm"
	"github.com/JaimeStill/estimator/internal/override"
	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/pkg/formatting"
)

// Extractor produces specifications from raw order text.
type Extractor struct {
	completer llm.Completer
	decider   llm.Conversation
	logger    *slog.Logger
}

// New creates an Extractor. A nil completer selects the heuristic parser; a
// nil decider selects the deterministic rules in Decide.
func New(completer llm.Completer, decider llm.Conversation, logger *slog.Logger) *Extractor {
	return &Extractor{
		completer: completer,
		decider:   decider,
		logger:    logger.With("system", "extraction"),
	}
}

// Parse extracts a specification from text. Undecodable completion output
// yields the parse_error specification. Output that decodes to anything other
// than a JSON object returns an *ExtractionError.
func (e *Extractor) Parse(ctx context.Context, text string) (printspec.Specification, error) {
	raw := e.complete(ctx, text)

	decoded, err := formatting.Parse[any](formatting.ObjectSpan(raw))
	if err != nil {
		e.logger.Warn("completion output is not JSON", "raw", raw, "error", err)
		return printspec.Unparseable(), nil
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		e.logger.Error("completion output is not an object", "raw", raw)
		return printspec.Specification{}, &ExtractionError{
			Raw:    raw,
			Reason: fmt.Sprintf("completion output is %T, not an object", decoded),
		}
	}

	if err := checkSchema(obj); err != nil {
		e.logger.Warn("coercing completion output", "error", err)
	}

	spec := printspec.FromMap(obj)
	e.logger.Info("specification extracted",
		"product_type", printspec.StringValue(spec.ProductType),
		"quantity", spec.QuantityValue(),
		"size", printspec.StringValue(spec.Size),
	)
	return spec, nil
}

func (e *Extractor) complete(ctx context.Context, text string) string {
	prompt := Prompt(text)

	if e.completer != nil {
		raw, err := e.completer.Submit(ctx, prompt)
		if err == nil {
			return raw
		}
		e.logger.Warn("completion failed, using heuristic parser", "error", err)
	}

	raw, _ := Heuristic{}.Submit(ctx, prompt)
	return raw
}

// Decide returns a full disposition for spec. When a decider is configured it
// is asked first and the first decision token in its reply wins. Otherwise,
// or when the reply carries no token, deterministic rules apply: explicit
// override, then missing fields, unsupported finishing, non-positive quantity
// and the word "free".
func (e *Extractor) Decide(ctx context.Context, spec printspec.Specification, text string) printspec.Decision {
	txt := strings.ToLower(text)

	if e.decider != nil {
		if d, ok := e.ask(ctx, spec, txt); ok {
			return d
		}
	}

	if d, ok := override.Detect(txt); ok {
		return d
	}
	if len(spec.MissingFields) > 0 {
		return printspec.NeedsReview
	}
	for _, f := range spec.Finishing {
		if !printspec.SupportedFinishing(f) {
			return printspec.Rejected
		}
	}
	if spec.QuantityValue() <= 0 {
		return printspec.Rejected
	}
	if strings.Contains(txt, "free") {
		return printspec.Rejected
	}
	return printspec.AutoApproved
}

func (e *Extractor) ask(ctx context.Context, spec printspec.Specification, txt string) (printspec.Decision, bool) {
	encoded, err := json.Marshal(spec)
	if err != nil {
		return "", false
	}

	reply, err := e.decider.Converse(ctx, []llm.Message{
		{Role: "system", Content: decisionSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(decisionUserPrompt, encoded, txt)},
	})
	if err != nil {
		e.logger.Warn("decision call failed", "error", err)
		return "", false
	}

	reply = strings.ToLower(strings.TrimSpace(reply))
	for _, d := range printspec.Decisions {
		if strings.Contains(reply, string(d)) {
			return d, true
		}
	}

	e.logger.Warn("decision reply carries no token", "reply", reply)
	return "", false
}
