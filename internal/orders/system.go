package orders

import (
	"context"

	"github.com/JaimeStill/estimator/pkg/pagination"
)

// System defines the public contract for order operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Order], error)

	// All returns every order in id order.
	All(ctx context.Context) ([]Order, error)

	Find(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, cmd CreateCommand) (*Order, error)
	Commit(ctx context.Context, id int64, d Disposition) (*Order, error)
	Update(ctx context.Context, id int64, u Update) (*Order, error)
}
