package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Size enumerates the drink sizes offered by the café.
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// Valid reports whether s is one of the defined sizes.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// ParseSize converts a raw string into a Size. An empty string defaults to
// small, matching the behaviour of the admin item form.
func ParseSize(raw string) (Size, error) {
	if raw == "" {
		return SizeSmall, nil
	}
	s := Size(raw)
	if !s.Valid() {
		return "", &InvalidSizeError{Size: raw}
	}
	return s, nil
}

// TempClass tags a drink as suited for hot weather, cold weather, or both.
// It is the categorical tag used for weather-based filtering, distinct from
// the ambient temperature itself.
type TempClass string

const (
	ClassHot  TempClass = "hot"
	ClassCold TempClass = "cold"
	ClassBoth TempClass = "both"
)

// Valid reports whether c is one of the defined temperature classes.
func (c TempClass) Valid() bool {
	switch c {
	case ClassHot, ClassCold, ClassBoth:
		return true
	}
	return false
}

// ParseTempClass converts a raw string into a TempClass. An empty string
// defaults to hot.
func ParseTempClass(raw string) (TempClass, error) {
	if raw == "" {
		return ClassHot, nil
	}
	c := TempClass(raw)
	if !c.Valid() {
		return "", &InvalidTempClassError{Class: raw}
	}
	return c, nil
}

// InvalidSizeError indicates a size value outside {S, M, L}.
type InvalidSizeError struct {
	Size string
}

func (e *InvalidSizeError) Error() string {
	return "invalid size " + e.Size + ": must be S, M or L"
}

// InvalidTempClassError indicates a temperature class outside {hot, cold, both}.
type InvalidTempClassError struct {
	Class string
}

func (e *InvalidTempClassError) Error() string {
	return "invalid temperature class " + e.Class + ": must be hot, cold or both"
}

// InvalidPriceError indicates a non-positive item price.
type InvalidPriceError struct {
	Price decimal.Decimal
}

func (e *InvalidPriceError) Error() string {
	return "invalid price " + e.Price.String() + ": must be greater than 0"
}

// ErrEmptyName is returned when an item is created or updated without a name.
var ErrEmptyName = errors.New("item name is required")

// MenuItem represents a sellable drink in the catalog.
type MenuItem struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Size        Size
	TempClass   TempClass
	Description string
	Available   bool
}

// Validate checks the invariants required before persisting an item.
func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return ErrEmptyName
	}
	if !m.Price.IsPositive() {
		return &InvalidPriceError{Price: m.Price}
	}
	if !m.Size.Valid() {
		return &InvalidSizeError{Size: string(m.Size)}
	}
	if !m.TempClass.Valid() {
		return &InvalidTempClassError{Class: string(m.TempClass)}
	}
	return nil
}

// Repository defines catalog persistence operations.
type Repository interface {
	List(ctx context.Context) ([]MenuItem, error)
	ListAvailable(ctx context.Context) ([]MenuItem, error)
	// ListAvailableByClass returns available items whose temperature class
	// matches the given class or is "both".
	ListAvailableByClass(ctx context.Context, class TempClass) ([]MenuItem, error)
	Search(ctx context.Context, keyword string) ([]MenuItem, error)
	GetByID(ctx context.Context, id int64) (*MenuItem, error)
	Create(ctx context.Context, item *MenuItem) error
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id int64) error
	// ToggleAvailability flips the availability flag in a single statement
	// and returns the new state.
	ToggleAvailability(ctx context.Context, id int64) (bool, error)
}
