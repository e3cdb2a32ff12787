package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kursovoi/storefront/pkg/httpx"
)

func (h *Handler) listProducts(c *gin.Context) {
	products := h.catalog.Products(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := httpx.ParamInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	p, found := h.catalog.Product(c.Request.Context(), id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) listStores(c *gin.Context) {
	stores := h.catalog.Stores(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"stores": stores, "count": len(stores)})
}

func (h *Handler) getStore(c *gin.Context) {
	id, ok := httpx.ParamInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}
	st, found := h.catalog.Store(c.Request.Context(), id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return
	}
	c.JSON(http.StatusOK, st)
}
