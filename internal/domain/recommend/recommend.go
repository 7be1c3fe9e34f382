// Package recommend maps ambient temperature readings to a subset of the
// available drink catalog.
package recommend

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/tlucafe/pos/internal/domain/catalog"
	"github.com/tlucafe/pos/internal/weather"
)

// DefaultTemperature is substituted when the weather lookup fails.
const DefaultTemperature = 25

// Fixed thresholds; no configuration.
const (
	hotDrinkBelow  = 20
	coldDrinkAbove = 35
)

// CatalogSource is the slice of the catalog repository the engine reads.
type CatalogSource interface {
	ListAvailableByClass(ctx context.Context, class catalog.TempClass) ([]catalog.MenuItem, error)
}

// WeatherSource provides the current ambient conditions and may fail.
type WeatherSource interface {
	Current(ctx context.Context) (weather.Reading, error)
}

// ClassForTemperature returns the temperature class matched for a given
// ambient temperature. Below 20°C hot drinks are suggested, above 35°C
// cold drinks; the midrange matches only items tagged "both" (items tagged
// "both" are included in every branch by the repository query).
func ClassForTemperature(t float64) catalog.TempClass {
	switch {
	case t < hotDrinkBelow:
		return catalog.ClassHot
	case t > coldDrinkAbove:
		return catalog.ClassCold
	default:
		return catalog.ClassBoth
	}
}

// Engine produces weather-based drink recommendations.
type Engine struct {
	catalog CatalogSource
	weather WeatherSource
}

// NewEngine creates an Engine with the required sources.
func NewEngine(catalogSrc CatalogSource, weatherSrc WeatherSource) *Engine {
	return &Engine{catalog: catalogSrc, weather: weatherSrc}
}

// ForTemperature returns the available items recommended for the given
// ambient temperature.
func (e *Engine) ForTemperature(ctx context.Context, t float64) ([]catalog.MenuItem, error) {
	items, err := e.catalog.ListAvailableByClass(ctx, ClassForTemperature(t))
	if err != nil {
		return nil, errors.Wrap(err, "list by class")
	}
	return items, nil
}

// Current fetches the weather and recommends drinks for it. A failed weather
// lookup is recovered locally: the default temperature is used and no error
// is propagated for it. The reading actually used is returned alongside the
// items; Fallback on the reading reports whether the default was substituted.
func (e *Engine) Current(ctx context.Context) ([]catalog.MenuItem, Conditions, error) {
	cond := Conditions{Reading: weather.Reading{Temp: DefaultTemperature, Description: "N/A"}}

	r, err := e.weather.Current(ctx)
	if err != nil {
		cond.Fallback = true
	} else {
		cond.Reading = r
	}

	items, err := e.ForTemperature(ctx, cond.Temp)
	if err != nil {
		return nil, cond, err
	}
	return items, cond, nil
}

// Conditions is the weather reading a recommendation was computed from.
type Conditions struct {
	weather.Reading

	// Fallback is true when the weather lookup failed and the default
	// temperature was substituted.
	Fallback bool
}
