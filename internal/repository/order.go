package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlucafe/pos/internal/domain/catalog"
	"github.com/tlucafe/pos/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (user_id, total)
		VALUES ($1, $2) RETURNING order_id, order_date`

	insertDetailSQL = `INSERT INTO order_details (order_id, item_id, size, quantity)
		VALUES ($1, $2, $3, $4)`

	listOrdersSQL = `SELECT o.order_id, o.order_date, o.total,
			COALESCE(u.username, ''), COALESCE(d.cups, 0)
		FROM orders o
		LEFT JOIN users u ON u.user_id = o.user_id
		LEFT JOIN (
			SELECT order_id, SUM(quantity) AS cups FROM order_details GROUP BY order_id
		) d ON d.order_id = o.order_id
		ORDER BY o.order_date DESC`

	orderDetailsSQL = `SELECT m.name, od.size, od.quantity, m.price
		FROM order_details od
		JOIN menu m ON m.item_id = od.item_id
		WHERE od.order_id = $1`

	// Order totals are summed once per order: the detail quantities are
	// pre-aggregated so the join cannot multiply header rows.
	dailySalesSQL = `SELECT to_char(date_trunc('day', o.order_date), 'DD/MM/YYYY'),
			COUNT(o.order_id), COALESCE(SUM(d.cups), 0), COALESCE(SUM(o.total), 0)
		FROM orders o
		LEFT JOIN (
			SELECT order_id, SUM(quantity) AS cups FROM order_details GROUP BY order_id
		) d ON d.order_id = o.order_id
		GROUP BY date_trunc('day', o.order_date)
		ORDER BY date_trunc('day', o.order_date) DESC
		LIMIT 30`

	monthlySalesSQL = `SELECT to_char(date_trunc('month', o.order_date), 'MM/YYYY'),
			COUNT(o.order_id), COALESCE(SUM(d.cups), 0), COALESCE(SUM(o.total), 0)
		FROM orders o
		LEFT JOIN (
			SELECT order_id, SUM(quantity) AS cups FROM order_details GROUP BY order_id
		) d ON d.order_id = o.order_id
		GROUP BY date_trunc('month', o.order_date)
		ORDER BY date_trunc('month', o.order_date) DESC
		LIMIT 12`

	yearlySalesSQL = `SELECT to_char(date_trunc('year', o.order_date), 'YYYY'),
			COUNT(o.order_id), COALESCE(SUM(d.cups), 0), COALESCE(SUM(o.total), 0)
		FROM orders o
		LEFT JOIN (
			SELECT order_id, SUM(quantity) AS cups FROM order_details GROUP BY order_id
		) d ON d.order_id = o.order_id
		GROUP BY date_trunc('year', o.order_date)
		ORDER BY date_trunc('year', o.order_date) DESC
		LIMIT 5`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order header and all detail rows in one transaction,
// assigning o.ID and o.CreatedAt from the database.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order, details []order.Detail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, insertOrderSQL, o.UserID, o.Total).Scan(&o.ID, &o.CreatedAt); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	for _, d := range details {
		if _, err := tx.Exec(ctx, insertDetailSQL, o.ID, d.ItemID, d.Size, d.Quantity); err != nil {
			return fmt.Errorf("inserting detail for item %d: %w", d.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

// List returns all orders newest first, with username and total item count.
func (r *OrderRepository) List(ctx context.Context) ([]order.Summary, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (order.Summary, error) {
		var s order.Summary
		err := row.Scan(&s.ID, &s.CreatedAt, &s.Total, &s.Username, &s.ItemCount)
		return s, err
	})
}

// Details returns the line items of a single order with current item names
// and prices.
func (r *OrderRepository) Details(ctx context.Context, orderID int64) ([]order.DetailRow, error) {
	rows, err := r.pool.Query(ctx, orderDetailsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing details for order %d: %w", orderID, err)
	}
	return pgx.CollectRows(rows, scanDetailRow)
}

// DailySales returns per-day aggregates for the last 30 days with orders.
func (r *OrderRepository) DailySales(ctx context.Context) ([]order.SalesRow, error) {
	return r.salesRows(ctx, dailySalesSQL)
}

// MonthlySales returns per-month aggregates for the last 12 months with orders.
func (r *OrderRepository) MonthlySales(ctx context.Context) ([]order.SalesRow, error) {
	return r.salesRows(ctx, monthlySalesSQL)
}

// YearlySales returns per-year aggregates for the last 5 years with orders.
func (r *OrderRepository) YearlySales(ctx context.Context) ([]order.SalesRow, error) {
	return r.salesRows(ctx, yearlySalesSQL)
}

func (r *OrderRepository) salesRows(ctx context.Context, sql string) ([]order.SalesRow, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("aggregating sales: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (order.SalesRow, error) {
		var s order.SalesRow
		err := row.Scan(&s.Period, &s.Orders, &s.Cups, &s.Revenue)
		return s, err
	})
}

func scanDetailRow(row pgx.CollectableRow) (order.DetailRow, error) {
	var (
		d    order.DetailRow
		size string
	)
	err := row.Scan(&d.Name, &size, &d.Quantity, &d.Price)
	d.Size = catalog.Size(size)
	return d, err
}
