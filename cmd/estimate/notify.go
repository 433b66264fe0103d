package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/estimator/internal/printspec"
	"github.com/JaimeStill/estimator/internal/workflow"
)

var notifyFlags struct {
	orderID  int64
	decision string
	price    float64
	email    string
	issues   []string
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Deliver one disposition to the workflow webhook",
	Args:  cobra.NoArgs,
	RunE:  runNotify,
}

type notifyResult struct {
	Delivered  bool     `json:"delivered"`
	Candidates []string `json:"candidates"`
}

func init() {
	f := notifyCmd.Flags()
	f.Int64Var(&notifyFlags.orderID, "order-id", 0, "order id (required)")
	f.StringVar(&notifyFlags.decision, "decision", "", "auto_approved, needs_review or rejected (required)")
	f.Float64Var(&notifyFlags.price, "price", 0, "final price")
	f.StringVar(&notifyFlags.email, "email", "", "customer email")
	f.StringSliceVar(&notifyFlags.issues, "issue", nil, "issue tag, repeatable")

	_ = notifyCmd.MarkFlagRequired("order-id")
	_ = notifyCmd.MarkFlagRequired("decision")
}

func runNotify(cmd *cobra.Command, _ []string) error {
	decision := printspec.Decision(notifyFlags.decision)
	if !decision.Valid() {
		return fmt.Errorf("unknown decision %q", notifyFlags.decision)
	}

	payload := workflow.Payload{
		OrderID:  notifyFlags.orderID,
		Decision: decision,
		Issues:   notifyFlags.issues,
	}
	if payload.Issues == nil {
		payload.Issues = []string{}
	}
	if cmd.Flags().Changed("price") {
		payload.Price = &notifyFlags.price
	}
	if notifyFlags.email != "" {
		payload.Email = &notifyFlags.email
	}

	svc, _, err := loadServices(cmd)
	if err != nil {
		return err
	}

	result := notifyResult{
		Delivered:  svc.Notifier.Trigger(cmd.Context(), payload),
		Candidates: svc.Notifier.Candidates(),
	}
	if err := render(cmd.OutOrStdout(), rootFlags.output, result); err != nil {
		return err
	}
	if !result.Delivered {
		return fmt.Errorf("order %d: workflow delivery failed", payload.OrderID)
	}
	return nil
}
