package recommend

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlucafe/pos/internal/domain/catalog"
	"github.com/tlucafe/pos/internal/weather"
)

// mockCatalog returns available items whose class matches the queried class
// or "both", mirroring the repository's IN (class, 'both') filter.
type mockCatalog struct {
	items []catalog.MenuItem
	err   error
}

func (m *mockCatalog) ListAvailableByClass(_ context.Context, class catalog.TempClass) ([]catalog.MenuItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []catalog.MenuItem
	for _, it := range m.items {
		if it.Available && (it.TempClass == class || it.TempClass == catalog.ClassBoth) {
			out = append(out, it)
		}
	}
	return out, nil
}

type mockWeather struct {
	reading weather.Reading
	err     error
}

func (m *mockWeather) Current(_ context.Context) (weather.Reading, error) {
	return m.reading, m.err
}

func newDrink(id int64, name string, class catalog.TempClass) catalog.MenuItem {
	return catalog.MenuItem{
		ID:        id,
		Name:      name,
		Price:     decimal.NewFromInt(40000),
		Size:      catalog.SizeSmall,
		TempClass: class,
		Available: true,
	}
}

func TestClassForTemperature(t *testing.T) {
	tests := []struct {
		temp float64
		want catalog.TempClass
	}{
		{temp: -5, want: catalog.ClassHot},
		{temp: 15, want: catalog.ClassHot},
		{temp: 19.9, want: catalog.ClassHot},
		{temp: 20, want: catalog.ClassBoth},
		{temp: 25, want: catalog.ClassBoth},
		{temp: 35, want: catalog.ClassBoth},
		{temp: 35.1, want: catalog.ClassCold},
		{temp: 40, want: catalog.ClassCold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassForTemperature(tt.temp), "temp %.1f", tt.temp)
	}
}

func TestForTemperature_ColdDay(t *testing.T) {
	src := &mockCatalog{items: []catalog.MenuItem{
		newDrink(1, "Espresso", catalog.ClassHot),
		newDrink(2, "IcedTea", catalog.ClassCold),
		newDrink(3, "Smoothie", catalog.ClassBoth),
	}}
	e := NewEngine(src, &mockWeather{})

	items, err := e.ForTemperature(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Espresso", items[0].Name)
	assert.Equal(t, "Smoothie", items[1].Name)
}

func TestForTemperature_HotDay(t *testing.T) {
	src := &mockCatalog{items: []catalog.MenuItem{
		newDrink(1, "Espresso", catalog.ClassHot),
		newDrink(2, "IcedTea", catalog.ClassCold),
		newDrink(3, "Smoothie", catalog.ClassBoth),
	}}
	e := NewEngine(src, &mockWeather{})

	items, err := e.ForTemperature(context.Background(), 38)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "IcedTea", items[0].Name)
	assert.Equal(t, "Smoothie", items[1].Name)
}

func TestForTemperature_MidrangeReturnsBothOnly(t *testing.T) {
	src := &mockCatalog{items: []catalog.MenuItem{
		newDrink(1, "Espresso", catalog.ClassHot),
		newDrink(2, "IcedTea", catalog.ClassCold),
		newDrink(3, "Smoothie", catalog.ClassBoth),
	}}
	e := NewEngine(src, &mockWeather{})

	items, err := e.ForTemperature(context.Background(), 27)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Smoothie", items[0].Name)
}

func TestCurrent_UsesLiveReading(t *testing.T) {
	src := &mockCatalog{items: []catalog.MenuItem{
		newDrink(1, "Espresso", catalog.ClassHot),
		newDrink(3, "Smoothie", catalog.ClassBoth),
	}}
	w := &mockWeather{reading: weather.Reading{Temp: 12, Description: "light rain"}}
	e := NewEngine(src, w)

	items, cond, err := e.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, cond.Fallback)
	assert.InDelta(t, 12, cond.Temp, 0.001)
	assert.Equal(t, "light rain", cond.Description)
	assert.Len(t, items, 2)
}

func TestCurrent_WeatherFailureFallsBackToDefault(t *testing.T) {
	src := &mockCatalog{items: []catalog.MenuItem{
		newDrink(1, "Espresso", catalog.ClassHot),
		newDrink(2, "IcedTea", catalog.ClassCold),
		newDrink(3, "Smoothie", catalog.ClassBoth),
	}}
	w := &mockWeather{err: weather.ErrUnavailable}
	e := NewEngine(src, w)

	items, cond, err := e.Current(context.Background())
	require.NoError(t, err, "weather failure must not propagate")
	assert.True(t, cond.Fallback)
	assert.InDelta(t, DefaultTemperature, cond.Temp, 0.001)

	// 25°C is midrange, so only dual-purpose items come back.
	require.Len(t, items, 1)
	assert.Equal(t, "Smoothie", items[0].Name)
}

func TestCurrent_CatalogErrorPropagates(t *testing.T) {
	src := &mockCatalog{err: errors.New("db down")}
	e := NewEngine(src, &mockWeather{reading: weather.Reading{Temp: 10}})

	_, _, err := e.Current(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list by class")
}
