package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/tlucafe/pos/internal/domain/catalog"
	"github.com/tlucafe/pos/internal/domain/recommend"
)

type menuItemRequest struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Size            string          `json:"size"`
	TemperatureType string          `json:"temperature_type"`
	Description     string          `json:"description"`
	Available       *bool           `json:"available"`
}

type menuItemResponse struct {
	ItemID          int64           `json:"item_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Size            string          `json:"size"`
	TemperatureType string          `json:"temperature_type"`
	Description     string          `json:"description"`
	Available       bool            `json:"available"`
}

func toMenuItemResponse(it catalog.MenuItem) menuItemResponse {
	return menuItemResponse{
		ItemID:          it.ID,
		Name:            it.Name,
		Price:           it.Price,
		Size:            string(it.Size),
		TemperatureType: string(it.TempClass),
		Description:     it.Description,
		Available:       it.Available,
	}
}

func toMenuItemResponses(items []catalog.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toMenuItemResponse(it))
	}
	return out
}

func (h *Handler) listMenu(c echo.Context) error {
	items, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toMenuItemResponses(items))
}

func (h *Handler) listAvailableMenu(c echo.Context) error {
	items, err := h.catalog.ListAvailable(c.Request().Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toMenuItemResponses(items))
}

func (h *Handler) searchMenu(c echo.Context) error {
	keyword := c.QueryParam("q")
	items, err := h.catalog.Search(c.Request().Context(), keyword)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toMenuItemResponses(items))
}

func (h *Handler) createMenuItem(c echo.Context) error {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "malformed request body")
	}
	item, err := menuItemFromRequest(req)
	if err != nil {
		return mapDomainError(c, err)
	}
	if err := item.Validate(); err != nil {
		return mapDomainError(c, err)
	}
	if err := h.catalog.Create(c.Request().Context(), item); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toMenuItemResponse(*item))
}

func (h *Handler) updateMenuItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid item id")
	}
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "malformed request body")
	}
	item, err := menuItemFromRequest(req)
	if err != nil {
		return mapDomainError(c, err)
	}
	item.ID = id
	if err := item.Validate(); err != nil {
		return mapDomainError(c, err)
	}
	if err := h.catalog.Update(c.Request().Context(), item); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toMenuItemResponse(*item))
}

func (h *Handler) deleteMenuItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid item id")
	}
	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return mapDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) toggleMenuItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid item id")
	}
	available, err := h.catalog.ToggleAvailability(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"item_id": id, "available": available})
}

type weatherResponse struct {
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Fallback    bool    `json:"fallback"`
}

func (h *Handler) currentWeather(c echo.Context) error {
	r, err := h.weather.Current(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, weatherResponse{
			Temp:        recommend.DefaultTemperature,
			Description: "N/A",
			Fallback:    true,
		})
	}
	return c.JSON(http.StatusOK, weatherResponse{Temp: r.Temp, Description: r.Description})
}

type recommendationsResponse struct {
	Conditions weatherResponse    `json:"conditions"`
	Items      []menuItemResponse `json:"items"`
}

// recommendations returns available drinks matching the current temperature.
// An explicit ?temp= overrides the weather lookup, mainly for testing.
func (h *Handler) recommendations(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("temp"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid temp parameter")
		}
		items, err := h.engine.ForTemperature(ctx, t)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(http.StatusOK, recommendationsResponse{
			Conditions: weatherResponse{Temp: t, Description: "manual override"},
			Items:      toMenuItemResponses(items),
		})
	}

	items, cond, err := h.engine.Current(ctx)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, recommendationsResponse{
		Conditions: weatherResponse{Temp: cond.Temp, Description: cond.Description, Fallback: cond.Fallback},
		Items:      toMenuItemResponses(items),
	})
}

func menuItemFromRequest(req menuItemRequest) (*catalog.MenuItem, error) {
	size, err := catalog.ParseSize(req.Size)
	if err != nil {
		return nil, err
	}
	class, err := catalog.ParseTempClass(req.TemperatureType)
	if err != nil {
		return nil, err
	}
	item := &catalog.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Size:        size,
		TempClass:   class,
		Description: req.Description,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	return item, nil
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
