package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/pkg/httpx"
)

// requireAdmin — админ-отчёты доступны только роли admin.
func (h *Handler) requireAdmin(c *gin.Context) bool {
	ident, ok := h.requireAuth(c)
	if !ok {
		return false
	}
	if ident.Role != domain.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return false
	}
	if h.analytics == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "analytics storage disabled"})
		return false
	}
	return true
}

func (h *Handler) salesByStore(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	sales, err := h.analytics.SalesByStore(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "analytics: sales by store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": sales})
}

func (h *Handler) topProducts(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	limit, _ := httpx.ParseLimitOffset(c, 10, 100)
	products, err := h.analytics.TopProducts(c.Request.Context(), limit)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "analytics: top products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
