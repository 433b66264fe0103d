// Package disposition resolves a received order into a priced, classified
// order: it extracts the specification, validates and prices it, applies
// any explicit override, commits the outcome and notifies the workflow.
package disposition

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/internal/override"
	"github.com/JaimeStill/estimator/internal/pricing"
	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/internal/validation"
	"github.com/JaimeStill/estimator/internal/workflow"
)

// Parser extracts a specification from raw order text.
type Parser interface {
	Parse(ctx context.Context, text string) (printspec.Specification, error)
}

// Orders is the order store read and committed by the resolver.
type Orders interface {
	Find(ctx context.Context, id int64) (*orders.Order, error)
	Commit(ctx context.Context, id int64, d orders.Disposition) (*orders.Order, error)
}

// Notifier delivers the disposition summary downstream.
type Notifier interface {
	Trigger(ctx context.Context, payload workflow.Payload) bool
}

// Command requests an estimate for a received order.
type Command struct {
	OrderID       int64   `json:"order_id"`
	RawText       string  `json:"raw_text"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}

// Assessment is the storage-free outcome of evaluating order text.
type Assessment struct {
	Spec       printspec.Specification `json:"spec"`
	Validation validation.Result       `json:"validation"`
	Pricing    pricing.Result          `json:"pricing"`
	Decision   printspec.Decision      `json:"decision"`
}

// Result is the full outcome of a resolved order.
type Result struct {
	OrderID int64 `json:"order_id"`
	Assessment
	Notified bool `json:"notified"`
}

// Resolver runs the disposition pipeline for one order at a time.
type Resolver struct {
	parser   Parser
	orders   Orders
	notifier Notifier
	logger   *slog.Logger
}

// New creates a Resolver.
func New(parser Parser, o Orders, notifier Notifier, logger *slog.Logger) *Resolver {
	return &Resolver{
		parser:   parser,
		orders:   o,
		notifier: notifier,
		logger:   logger.With("system", "disposition"),
	}
}

// Assess extracts, validates and prices text and applies any override
// without touching storage.
func Assess(ctx context.Context, parser Parser, text string) (*Assessment, error) {
	spec, err := parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	a := &Assessment{Spec: spec}

	var g errgroup.Group
	g.Go(func() error {
		a.Validation = validation.Validate(spec, text)
		return nil
	})
	g.Go(func() error {
		a.Pricing = pricing.Estimate(spec)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.Decision = a.Validation.Decision
	if d, ok := override.Detect(text); ok {
		a.Decision = d
	}
	return a, nil
}

// Resolve estimates the order named by cmd. Nothing is written when the
// order is missing or extraction fails. Delivery failure is reported in
// Result.Notified and never reverses the commit.
func (r *Resolver) Resolve(ctx context.Context, cmd Command) (*Result, error) {
	if _, err := r.orders.Find(ctx, cmd.OrderID); err != nil {
		return nil, err
	}

	a, err := Assess(ctx, r.parser, cmd.RawText)
	if err != nil {
		return nil, err
	}
	r.logger.Info("order assessed",
		"order_id", cmd.OrderID,
		"validation", a.Validation.Decision,
		"decision", a.Decision,
		"final_price", a.Pricing.FinalPrice,
	)

	if _, err := r.orders.Commit(ctx, cmd.OrderID, orders.Disposition{
		Spec:       a.Spec,
		FinalPrice: a.Pricing.FinalPrice,
		Issues:     a.Validation.Issues,
		Status:     a.Decision,
		Email:      cmd.CustomerEmail,
	}); err != nil {
		return nil, fmt.Errorf("commit order %d: %w", cmd.OrderID, err)
	}

	price := a.Pricing.FinalPrice
	notified := r.notifier.Trigger(ctx, workflow.Payload{
		OrderID:  cmd.OrderID,
		Decision: a.Decision,
		Price:    &price,
		Issues:   a.Validation.Issues,
		Email:    cmd.CustomerEmail,
	})

	return &Result{
		OrderID:    cmd.OrderID,
		Assessment: *a,
		Notified:   notified,
	}, nil
}
