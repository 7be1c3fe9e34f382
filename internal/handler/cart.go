package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/tlucafe/pos/internal/domain/cart"
	"github.com/tlucafe/pos/internal/domain/catalog"
)

type cartAddRequest struct {
	ItemID   int64  `json:"item_id"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type cartRemoveRequest struct {
	ItemID int64  `json:"item_id"`
	Size   string `json:"size"`
}

type cartLineResponse struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

func toCartResponse(lines []cart.Line, total decimal.Decimal) cartResponse {
	out := cartResponse{Lines: make([]cartLineResponse, 0, len(lines)), Total: total}
	for _, l := range lines {
		out.Lines = append(out.Lines, cartLineResponse{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Size:     string(l.Size),
			Price:    l.Price,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}
	return out
}

func (h *Handler) viewCart(c echo.Context) error {
	crt := h.carts.Get(sessionFromContext(c).Token)
	return c.JSON(http.StatusOK, toCartResponse(crt.Lines(), crt.Total()))
}

func (h *Handler) addCartItem(c echo.Context) error {
	var req cartAddRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "malformed request body")
	}

	size, err := catalog.ParseSize(req.Size)
	if err != nil {
		return mapDomainError(c, err)
	}
	item, err := h.catalog.GetByID(c.Request().Context(), req.ItemID)
	if err != nil {
		return mapDomainError(c, err)
	}

	crt := h.carts.Get(sessionFromContext(c).Token)
	if err := crt.Add(*item, size, req.Quantity); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(crt.Lines(), crt.Total()))
}

// removeCartItem deletes a whole line. A missing line is a 404, not a
// server error; the cart is left untouched.
func (h *Handler) removeCartItem(c echo.Context) error {
	var req cartRemoveRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "malformed request body")
	}

	size, err := catalog.ParseSize(req.Size)
	if err != nil {
		return mapDomainError(c, err)
	}

	crt := h.carts.Get(sessionFromContext(c).Token)
	if err := crt.Remove(req.ItemID, size); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(crt.Lines(), crt.Total()))
}
