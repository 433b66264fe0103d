package orders

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/estimator/pkg/pagination"
	"github.com/JaimeStill/estimator/pkg/query"
	"github.com/JaimeStill/estimator/pkg/repository"
)

var dbErrors = repository.Errors{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
	Invalid:   ErrInvalidUpdate,
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an order repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "orders"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Order], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "raw_text", "email")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) All(ctx context.Context) ([]Order, error) {
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "id"}).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Order, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOrder)
	if err != nil {
		return nil, dbErrors.Map(err)
	}
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	q := `
		INSERT INTO orders(raw_text, status, email)
		VALUES ($1, $2, $3)
		RETURNING ` + returning

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Order, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.RawText, StatusReceived, cmd.Email}, scanOrder)
	})
	if err != nil {
		return nil, dbErrors.Map(err)
	}

	r.logger.Info("order created", "id", o.ID, "email", cmd.Email != nil)
	return &o, nil
}

func (r *repo) Commit(ctx context.Context, id int64, d Disposition) (*Order, error) {
	q := `
		UPDATE orders SET
			product_type = $2,
			quantity = $3,
			size = $4,
			paper_type = $5,
			color = $6,
			finishing = $7,
			turnaround_days = $8,
			rush = $9,
			final_price = $10,
			issues = $11,
			status = $12,
			email = COALESCE($13, email),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + returning

	args := []any{
		id,
		d.Spec.ProductType,
		d.Spec.Quantity,
		d.Spec.Size,
		d.Spec.PaperType,
		d.Spec.Color,
		JoinList(d.Spec.Finishing),
		d.Spec.TurnaroundDays,
		d.Spec.Rush,
		d.FinalPrice,
		JoinList(d.Issues),
		string(d.Status),
		d.Email,
	}

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Order, error) {
		return repository.QueryOne(ctx, tx, q, args, scanOrder)
	})
	if err != nil {
		return nil, dbErrors.Map(err)
	}

	r.logger.Info("order committed", "id", o.ID, "status", o.Status, "final_price", d.FinalPrice)
	return &o, nil
}

func (r *repo) Update(ctx context.Context, id int64, u Update) (*Order, error) {
	q := `
		UPDATE orders SET
			status = COALESCE(NULLIF($2, ''), status),
			final_price = COALESCE($3, final_price),
			issues = COALESCE($4, issues),
			email = COALESCE($5, email),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + returning

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Order, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, u.Status, u.FinalPrice, u.Issues, u.Email}, scanOrder)
	})
	if err != nil {
		return nil, dbErrors.Map(err)
	}

	r.logger.Info("order updated", "id", o.ID, "status", o.Status)
	return &o, nil
}
