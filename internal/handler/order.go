package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/go-faster/sdk/zctx"

	"github.com/tlucafe/pos/internal/domain/order"
	"github.com/tlucafe/pos/internal/export"
)

type orderResponse struct {
	OrderID   int64           `json:"order_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Receipt   string          `json:"receipt,omitempty"`
}

type orderSummaryResponse struct {
	OrderID   int64           `json:"order_id"`
	CreatedAt time.Time       `json:"created_at"`
	Total     decimal.Decimal `json:"total"`
	Username  string          `json:"username"`
	ItemCount int64           `json:"item_count"`
}

type orderDetailResponse struct {
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type salesRowResponse struct {
	Period  string          `json:"period"`
	Orders  int64           `json:"orders"`
	Cups    int64           `json:"cups"`
	Revenue decimal.Decimal `json:"revenue"`
}

// submitOrder turns the session cart into a persisted order. The receipt is
// rendered best-effort: a failed export is logged but does not fail the
// order, which is already committed at that point.
func (h *Handler) submitOrder(c echo.Context) error {
	ctx := c.Request().Context()
	sess := sessionFromContext(c)

	crt := h.carts.Get(sess.Token)
	lines := crt.Lines()

	o, err := h.orderSvc.Submit(ctx, sess.UserID, lines)
	if err != nil {
		return mapDomainError(c, err)
	}

	resp := orderResponse{OrderID: o.ID, Total: o.Total, CreatedAt: o.CreatedAt}

	receipt := export.Receipt{OrderID: o.ID, PlacedAt: o.CreatedAt, Lines: lines, Total: o.Total}
	if path, err := h.exporter.Export(receipt); err != nil {
		zctx.From(ctx).Warn("Receipt export failed",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
	} else {
		resp.Receipt = path
	}

	crt.Clear()
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) listOrders(c echo.Context) error {
	summaries, err := h.orders.List(c.Request().Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]orderSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, orderSummaryResponse{
			OrderID:   s.ID,
			CreatedAt: s.CreatedAt,
			Total:     s.Total,
			Username:  s.Username,
			ItemCount: s.ItemCount,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) orderDetails(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid order id")
	}
	rows, err := h.orders.Details(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]orderDetailResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, orderDetailResponse{
			Name:     r.Name,
			Size:     string(r.Size),
			Quantity: r.Quantity,
			Price:    r.Price,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) dailySales(c echo.Context) error {
	return h.sales(c, h.orders.DailySales)
}

func (h *Handler) monthlySales(c echo.Context) error {
	return h.sales(c, h.orders.MonthlySales)
}

func (h *Handler) yearlySales(c echo.Context) error {
	return h.sales(c, h.orders.YearlySales)
}

func (h *Handler) sales(c echo.Context, query func(ctx context.Context) ([]order.SalesRow, error)) error {
	rows, err := query(c.Request().Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]salesRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, salesRowResponse{
			Period:  r.Period,
			Orders:  r.Orders,
			Cups:    r.Cups,
			Revenue: r.Revenue,
		})
	}
	return c.JSON(http.StatusOK, out)
}
