// Package orders implements the print order domain: intake records, the
// disposition commit written by the resolver, and status patches from the
// downstream workflow and customer service.
package orders

import (
	"strings"
	"time"

	"github.com/JaimeStill/estimator/internal/printspec"
)

// StatusReceived marks an order that has been taken in but not yet estimated.
const StatusReceived = "received"

// Order is a persisted print order. Finishing and Issues are comma-joined.
type Order struct {
	ID             int64     `json:"id"`
	RawText        string    `json:"raw_text"`
	ProductType    *string   `json:"product_type"`
	Quantity       *int      `json:"quantity"`
	Size           *string   `json:"size"`
	PaperType      *string   `json:"paper_type"`
	Color          *string   `json:"color"`
	Finishing      string    `json:"finishing"`
	TurnaroundDays *int      `json:"turnaround_days"`
	Rush           bool      `json:"rush"`
	Status         string    `json:"status"`
	FinalPrice     *float64  `json:"final_price"`
	Issues         string    `json:"issues"`
	Email          *string   `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommand carries the data recorded at intake.
type CreateCommand struct {
	RawText string
	Email   *string
}

// Disposition is the full outcome of an estimate, written in one commit.
// A nil Email leaves the stored email unchanged.
type Disposition struct {
	Spec       printspec.Specification
	FinalPrice float64
	Issues     []string
	Status     printspec.Decision
	Email      *string
}

// Update patches the status of an order. An empty Status and nil fields are
// left unchanged.
type Update struct {
	Status     string
	FinalPrice *float64
	Issues     *string
	Email      *string
}

// JoinList comma-joins list values for storage.
func JoinList(values []string) string {
	return strings.Join(values, ",")
}
