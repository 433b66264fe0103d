// Package dashboard projects stored orders into operator views: headline
// totals, an order table, status counts and a spreadsheet export.
package dashboard

import (
	"context"
	"math"

	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/internal/printspec"
)

// StatusUnknown counts orders stored without a status.
const StatusUnknown = "unknown"

// Source lists every stored order in id order.
type Source interface {
	All(ctx context.Context) ([]orders.Order, error)
}

// Summary holds headline totals.
type Summary struct {
	TotalOrders int     `json:"total_orders"`
	Revenue     float64 `json:"revenue"`
	Pending     int     `json:"pending"`
}

// Row is one order in the dashboard table.
type Row struct {
	ID          int64    `json:"id"`
	ProductType *string  `json:"product_type"`
	Quantity    *int     `json:"quantity"`
	Status      string   `json:"status"`
	FinalPrice  *float64 `json:"final_price"`
	Email       *string  `json:"email"`
	Issues      string   `json:"issues"`
}

// Stats counts orders per status.
type Stats struct {
	ByStatus map[string]int `json:"by_status"`
}

// Summarize totals all orders. Revenue sums priced orders and pending counts
// orders awaiting review.
func Summarize(all []orders.Order) Summary {
	s := Summary{TotalOrders: len(all)}
	for _, o := range all {
		if o.FinalPrice != nil {
			s.Revenue += *o.FinalPrice
		}
		if o.Status == string(printspec.NeedsReview) {
			s.Pending++
		}
	}
	s.Revenue = math.Round(s.Revenue*100) / 100
	return s
}

// Rows projects orders into table rows, preserving order.
func Rows(all []orders.Order) []Row {
	rows := make([]Row, len(all))
	for i, o := range all {
		rows[i] = Row{
			ID:          o.ID,
			ProductType: o.ProductType,
			Quantity:    o.Quantity,
			Status:      o.Status,
			FinalPrice:  o.FinalPrice,
			Email:       o.Email,
			Issues:      o.Issues,
		}
	}
	return rows
}

// CountByStatus tallies orders per status.
func CountByStatus(all []orders.Order) Stats {
	by := make(map[string]int)
	for _, o := range all {
		status := o.Status
		if status == "" {
			status = StatusUnknown
		}
		by[status]++
	}
	return Stats{ByStatus: by}
}
