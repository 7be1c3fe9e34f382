package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/tlucafe/pos/internal/domain/cart"
	"github.com/tlucafe/pos/internal/domain/catalog"
)

// ErrEmptyCart is returned when submission is attempted with no cart lines.
// It is raised before any persistence call.
var ErrEmptyCart = errors.New("cart is empty")

// ItemNotFoundError indicates a cart line referencing an item that no longer
// exists in the catalog.
type ItemNotFoundError struct {
	ItemID int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

// InvalidQuantityError indicates a cart line with a non-positive quantity.
type InvalidQuantityError struct {
	ItemID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for item %d", e.ItemID)
}

// CatalogSource is the slice of the catalog repository the service reads.
type CatalogSource interface {
	GetByID(ctx context.Context, id int64) (*catalog.MenuItem, error)
}

// Service encapsulates order submission business logic.
type Service struct {
	catalog CatalogSource
	orders  Repository
}

// NewService creates an order Service with the required dependencies.
func NewService(catalogSrc CatalogSource, orders Repository) *Service {
	return &Service{catalog: catalogSrc, orders: orders}
}

// Submit validates the cart lines, recomputes the total from live catalog
// prices, and persists the order header with one detail row per line. The
// header and details are written in a single transaction, so a mid-sequence
// failure leaves no partial order behind.
//
// The total deliberately ignores the cart's price snapshots: if the catalog
// changed mid-session, the prices at submission time win.
func (s *Service) Submit(ctx context.Context, userID int64, lines []cart.Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	details := make([]Detail, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, &InvalidQuantityError{ItemID: line.ItemID}
		}

		item, err := s.catalog.GetByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, &ItemNotFoundError{ItemID: line.ItemID}
			}
			return nil, errors.Wrap(err, "get item")
		}

		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		details[i] = Detail{
			ItemID:   line.ItemID,
			Size:     line.Size,
			Quantity: line.Quantity,
		}
	}

	o := &Order{
		UserID: userID,
		Total:  total,
	}
	if err := s.orders.Create(ctx, o, details); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}
