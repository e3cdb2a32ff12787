package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kursovoi/storefront/pkg/httpx"
)

type cartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) viewCart(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.cart.Items(ctx, h.identity(c), h.sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": count})
}

func (h *Handler) cartCount(c *gin.Context) {
	count := h.cart.CachedCount(c.Request.Context(), h.identity(c), h.sessionID(c))
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) addToCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	count, err := h.cart.Add(c.Request.Context(), h.identity(c), h.sessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func (h *Handler) updateCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	count, err := h.cart.SetQuantity(c.Request.Context(), h.identity(c), h.sessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	id, ok := httpx.ParamInt(c, "productId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	count, err := h.cart.Remove(c.Request.Context(), h.identity(c), h.sessionID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove from cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func (h *Handler) clearCart(c *gin.Context) {
	count, err := h.cart.Clear(c.Request.Context(), h.identity(c), h.sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}
