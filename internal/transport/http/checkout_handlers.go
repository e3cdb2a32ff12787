package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/pkg/validate"
)

type reviewRequest struct {
	ProductIDs []int `json:"product_ids"`
}

type checkoutLineView struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
	Error     string `json:"error,omitempty"`
}

type checkoutResultView struct {
	Lines          []checkoutLineView `json:"lines"`
	GrandTotal     string             `json:"grand_total"`
	Completed      bool               `json:"completed"`
	FailedProducts []int              `json:"failed_products,omitempty"`
}

func (h *Handler) reviewCheckout(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := 0
	if ident := h.identity(c); ident != nil {
		userID = ident.UserID
	}
	items, err := h.checkout.Review(c.Request.Context(), userID, h.sessionID(c), req.ProductIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare checkout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) confirmCheckout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if ident := h.identity(c); ident != nil {
		req.UserID = ident.UserID
	}

	result, err := h.checkout.Confirm(c.Request.Context(), h.sessionID(c), &req)
	switch {
	case errors.Is(err, validate.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	case errors.Is(err, validate.ErrInvalidCheckout):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(http.StatusOK, newCheckoutResultView(result))
}

func newCheckoutResultView(r *domain.CheckoutResult) checkoutResultView {
	view := checkoutResultView{
		Lines:          make([]checkoutLineView, 0, len(r.Lines)),
		GrandTotal:     domain.FormatAmount(r.GrandTotal),
		Completed:      r.Completed,
		FailedProducts: r.FailedProducts(),
	}
	for _, l := range r.Lines {
		lv := checkoutLineView{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: domain.FormatAmount(l.UnitPrice),
			LineTotal: domain.FormatAmount(l.LineTotal),
		}
		if l.Err != nil {
			lv.Error = l.Err.Error()
		}
		view.Lines = append(view.Lines, lv)
	}
	return view
}
