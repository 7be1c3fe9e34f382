// Package handler exposes the POS operations over HTTP. Handlers convert
// transport payloads to domain calls and map domain errors onto status codes.
package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/labstack/echo/v4"

	"github.com/tlucafe/pos/internal/domain/auth"
	"github.com/tlucafe/pos/internal/domain/cart"
	"github.com/tlucafe/pos/internal/domain/catalog"
	"github.com/tlucafe/pos/internal/domain/order"
	"github.com/tlucafe/pos/internal/domain/recommend"
	"github.com/tlucafe/pos/internal/export"
)

// Exporter renders a receipt for a submitted order and returns the file path.
type Exporter interface {
	Export(r export.Receipt) (string, error)
}

// Handler holds the domain dependencies behind the HTTP surface.
type Handler struct {
	catalog  catalog.Repository
	orders   order.Repository
	orderSvc *order.Service
	engine   *recommend.Engine
	weather  recommend.WeatherSource
	auth     *auth.Service
	sessions *auth.SessionStore
	carts    *cart.Store
	exporter Exporter
}

// New constructs a Handler with the required dependencies.
func New(
	catalogRepo catalog.Repository,
	orderRepo order.Repository,
	orderSvc *order.Service,
	engine *recommend.Engine,
	weatherSrc recommend.WeatherSource,
	authSvc *auth.Service,
	sessions *auth.SessionStore,
	carts *cart.Store,
	exporter Exporter,
) *Handler {
	return &Handler{
		catalog:  catalogRepo,
		orders:   orderRepo,
		orderSvc: orderSvc,
		engine:   engine,
		weather:  weatherSrc,
		auth:     authSvc,
		sessions: sessions,
		carts:    carts,
		exporter: exporter,
	}
}

// Register mounts all API routes on e under /api.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/login", h.login)
	api.POST("/logout", h.logout, h.requireSession)

	api.GET("/staff", h.listStaff, h.requireSession, h.requireAdmin)
	api.POST("/staff", h.createStaff, h.requireSession, h.requireAdmin)

	api.GET("/menu", h.listMenu, h.requireSession, h.requireAdmin)
	api.GET("/menu/available", h.listAvailableMenu, h.requireSession)
	api.GET("/menu/search", h.searchMenu, h.requireSession)
	api.POST("/menu", h.createMenuItem, h.requireSession, h.requireAdmin)
	api.PUT("/menu/:id", h.updateMenuItem, h.requireSession, h.requireAdmin)
	api.DELETE("/menu/:id", h.deleteMenuItem, h.requireSession, h.requireAdmin)
	api.POST("/menu/:id/toggle", h.toggleMenuItem, h.requireSession, h.requireAdmin)

	api.GET("/weather", h.currentWeather, h.requireSession)
	api.GET("/recommendations", h.recommendations, h.requireSession)

	api.GET("/cart", h.viewCart, h.requireSession)
	api.POST("/cart/items", h.addCartItem, h.requireSession)
	api.DELETE("/cart/items", h.removeCartItem, h.requireSession)

	api.POST("/orders", h.submitOrder, h.requireSession)
	api.GET("/orders", h.listOrders, h.requireSession, h.requireAdmin)
	api.GET("/orders/:id/details", h.orderDetails, h.requireSession)

	api.GET("/sales/daily", h.dailySales, h.requireSession, h.requireAdmin)
	api.GET("/sales/monthly", h.monthlySales, h.requireSession, h.requireAdmin)
	api.GET("/sales/yearly", h.yearlySales, h.requireSession, h.requireAdmin)
}

// errorResponse is the uniform JSON error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Code: status, Message: message})
}

// mapDomainError converts domain errors to HTTP responses; unknown errors
// surface as a generic 500 without leaking internals.
func mapDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, cart.ErrLineNotFound):
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrEmptyName):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUsernameTaken):
		return fail(c, http.StatusConflict, err.Error())
	}

	var (
		sizeErr    *catalog.InvalidSizeError
		classErr   *catalog.InvalidTempClassError
		priceErr   *catalog.InvalidPriceError
		qtyErr     *cart.InvalidQuantityError
		unavailErr *cart.ItemUnavailableError
		oqtyErr    *order.InvalidQuantityError
		missErr    *order.ItemNotFoundError
	)
	switch {
	case errors.As(err, &sizeErr),
		errors.As(err, &classErr),
		errors.As(err, &priceErr),
		errors.As(err, &qtyErr),
		errors.As(err, &oqtyErr):
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &unavailErr),
		errors.As(err, &missErr):
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	return fail(c, http.StatusInternalServerError, "internal error")
}
