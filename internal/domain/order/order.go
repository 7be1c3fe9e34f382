package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tlucafe/pos/internal/domain/catalog"
)

// Order is a persisted, finalized purchase. The identifier is assigned by
// the store at insert time.
type Order struct {
	ID        int64
	UserID    int64
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Detail is one line item written alongside the order header.
type Detail struct {
	ItemID   int64
	Size     catalog.Size
	Quantity int
}

// Summary is one row of the order listing: the header joined with the
// submitting user and the summed line quantity.
type Summary struct {
	ID        int64
	CreatedAt time.Time
	Total     decimal.Decimal
	Username  string
	ItemCount int64
}

// DetailRow is one row of a single order's detail listing, joined with the
// current menu item name and price.
type DetailRow struct {
	Name     string
	Size     catalog.Size
	Quantity int
	Price    decimal.Decimal
}

// SalesRow is one aggregated reporting row for a calendar period.
type SalesRow struct {
	Period  string
	Orders  int64
	Cups    int64
	Revenue decimal.Decimal
}

// Repository defines persistence operations for orders and the read-only
// sales reports.
type Repository interface {
	// Create inserts the order header and all detail rows in a single
	// transaction and assigns o.ID and o.CreatedAt.
	Create(ctx context.Context, o *Order, details []Detail) error
	List(ctx context.Context) ([]Summary, error)
	Details(ctx context.Context, orderID int64) ([]DetailRow, error)
	// DailySales groups orders by calendar day, most recent first, last 30.
	DailySales(ctx context.Context) ([]SalesRow, error)
	// MonthlySales groups orders by month, most recent first, last 12.
	MonthlySales(ctx context.Context) ([]SalesRow, error)
	// YearlySales groups orders by year, most recent first, last 5.
	YearlySales(ctx context.Context) ([]SalesRow, error)
}
