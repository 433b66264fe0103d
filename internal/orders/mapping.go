package orders

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/estimator/pkg/query"
	"github.com/JaimeStill/estimator/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "orders", "o").
	Project("id", "id").
	Project("raw_text", "raw_text").
	Project("product_type", "product_type").
	Project("quantity", "quantity").
	Project("size", "size").
	Project("paper_type", "paper_type").
	Project("color", "color").
	Project("finishing", "finishing").
	Project("turnaround_days", "turnaround_days").
	Project("rush", "rush").
	Project("status", "status").
	Project("final_price", "final_price").
	Project("issues", "issues").
	Project("email", "email").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var returning = projection.Returning()

var defaultSort = query.SortField{
	Field:      "id",
	Descending: true,
}

// Filters contains optional filtering criteria for order queries.
// Status and ProductType match exactly, Email matches case-insensitively
// and the price bounds are inclusive.
type Filters struct {
	Status      *string  `json:"status,omitempty"`
	ProductType *string  `json:"product_type,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Rush        *bool    `json:"rush,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("product_type", f.ProductType).
		WhereContains("email", f.Email).
		WhereEquals("rush", f.Rush).
		WhereAtLeast("final_price", f.MinPrice).
		WhereAtMost("final_price", f.MaxPrice)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unparseable booleans and prices are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if pt := values.Get("product_type"); pt != "" {
		f.ProductType = &pt
	}
	if e := values.Get("email"); e != "" {
		f.Email = &e
	}
	if v, err := strconv.ParseBool(values.Get("rush")); err == nil {
		f.Rush = &v
	}
	if v, err := strconv.ParseFloat(values.Get("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(values.Get("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}

	return f
}

func scanOrder(s repository.Scanner) (Order, error) {
	var o Order
	err := s.Scan(
		&o.ID,
		&o.RawText,
		&o.ProductType,
		&o.Quantity,
		&o.Size,
		&o.PaperType,
		&o.Color,
		&o.Finishing,
		&o.TurnaroundDays,
		&o.Rush,
		&o.Status,
		&o.FinalPrice,
		&o.Issues,
		&o.Email,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
