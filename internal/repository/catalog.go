package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlucafe/pos/internal/domain/catalog"
)

const (
	menuColumns = `item_id, name, price, size, temperature_type, description, is_available`

	listMenuSQL = `SELECT ` + menuColumns + ` FROM menu ORDER BY item_id`

	listAvailableSQL = `SELECT ` + menuColumns + ` FROM menu WHERE is_available ORDER BY item_id`

	listAvailableByClassSQL = `SELECT ` + menuColumns + ` FROM menu
		WHERE is_available AND temperature_type IN ($1, 'both') ORDER BY item_id`

	searchMenuSQL = `SELECT ` + menuColumns + ` FROM menu
		WHERE is_available AND name ILIKE '%' || $1 || '%' ORDER BY item_id`

	getMenuItemSQL = `SELECT ` + menuColumns + ` FROM menu WHERE item_id = $1`

	createMenuItemSQL = `INSERT INTO menu (name, price, size, temperature_type, description, is_available)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING item_id`

	updateMenuItemSQL = `UPDATE menu SET name = $2, price = $3, size = $4,
		temperature_type = $5, description = $6, is_available = $7 WHERE item_id = $1`

	deleteMenuItemSQL = `DELETE FROM menu WHERE item_id = $1`

	// Single-statement flip avoids the read-then-write lost-update race
	// between terminals.
	toggleMenuItemSQL = `UPDATE menu SET is_available = NOT is_available
		WHERE item_id = $1 RETURNING is_available`
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository implements catalog.Repository backed by PostgreSQL.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a CatalogRepository that uses the given pool.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// List returns every menu item ordered by ID.
func (r *CatalogRepository) List(ctx context.Context) ([]catalog.MenuItem, error) {
	rows, err := r.pool.Query(ctx, listMenuSQL)
	if err != nil {
		return nil, fmt.Errorf("listing menu: %w", err)
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// ListAvailable returns the items currently offered for sale.
func (r *CatalogRepository) ListAvailable(ctx context.Context) ([]catalog.MenuItem, error) {
	rows, err := r.pool.Query(ctx, listAvailableSQL)
	if err != nil {
		return nil, fmt.Errorf("listing available menu: %w", err)
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// ListAvailableByClass returns available items whose temperature class
// matches class or "both".
func (r *CatalogRepository) ListAvailableByClass(ctx context.Context, class catalog.TempClass) ([]catalog.MenuItem, error) {
	rows, err := r.pool.Query(ctx, listAvailableByClassSQL, string(class))
	if err != nil {
		return nil, fmt.Errorf("listing menu by class %q: %w", class, err)
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// Search returns available items whose name contains the keyword.
func (r *CatalogRepository) Search(ctx context.Context, keyword string) ([]catalog.MenuItem, error) {
	rows, err := r.pool.Query(ctx, searchMenuSQL, keyword)
	if err != nil {
		return nil, fmt.Errorf("searching menu: %w", err)
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// GetByID returns a single item by its identifier.
func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*catalog.MenuItem, error) {
	rows, err := r.pool.Query(ctx, getMenuItemSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, scanMenuItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return &item, nil
}

// Create inserts a new item and assigns its ID.
func (r *CatalogRepository) Create(ctx context.Context, item *catalog.MenuItem) error {
	err := r.pool.QueryRow(ctx, createMenuItemSQL,
		item.Name, item.Price, item.Size, item.TempClass, item.Description, item.Available,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("creating item %q: %w", item.Name, err)
	}
	return nil
}

// Update rewrites every mutable column of the item.
func (r *CatalogRepository) Update(ctx context.Context, item *catalog.MenuItem) error {
	tag, err := r.pool.Exec(ctx, updateMenuItemSQL,
		item.ID, item.Name, item.Price, item.Size, item.TempClass, item.Description, item.Available,
	)
	if err != nil {
		return fmt.Errorf("updating item %d: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes the item.
func (r *CatalogRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteMenuItemSQL, id)
	if err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// ToggleAvailability flips the availability flag and returns the new state.
func (r *CatalogRepository) ToggleAvailability(ctx context.Context, id int64) (bool, error) {
	var available bool
	err := r.pool.QueryRow(ctx, toggleMenuItemSQL, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, catalog.ErrNotFound
		}
		return false, fmt.Errorf("toggling item %d: %w", id, err)
	}
	return available, nil
}

func scanMenuItem(row pgx.CollectableRow) (catalog.MenuItem, error) {
	var (
		item  catalog.MenuItem
		size  string
		class string
	)
	err := row.Scan(&item.ID, &item.Name, &item.Price, &size, &class, &item.Description, &item.Available)
	item.Size = catalog.Size(size)
	item.TempClass = catalog.TempClass(class)
	return item, err
}
