package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kursovoi/storefront/internal/protocol"
	"github.com/kursovoi/storefront/internal/usecase"
	"github.com/kursovoi/storefront/pkg/httpx"
)

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ident, err := h.account.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid login or password"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "authorization unavailable"})
		return
	}

	if err := h.storeIdentity(c, ident); err != nil {
		h.log.Errorf(c.Request.Context(), "login: store identity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	// после входа счётчик пересчитывается уже по серверной корзине
	count, _ := h.cart.RefreshCount(c.Request.Context(), ident, h.sessionID(c))
	c.JSON(http.StatusOK, gin.H{
		"login":      ident.Login,
		"role":       ident.Role,
		"store_id":   ident.StoreID,
		"cart_count": count,
	})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.account.Register(c.Request.Context(), req.Login, req.Password, req.Phone); err != nil {
		if errors.Is(err, protocol.ErrRejected) {
			c.JSON(http.StatusConflict, gin.H{"error": "login already taken"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "registration unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *Handler) logout(c *gin.Context) {
	sid := h.sessionID(c)
	_ = h.sessions.DeleteValue(c.Request.Context(), sid, identityKey)
	count, _ := h.cart.RefreshCount(c.Request.Context(), nil, sid)
	c.JSON(http.StatusOK, gin.H{"success": true, "cart_count": count})
}

func (h *Handler) listOrders(c *gin.Context) {
	ident, ok := h.requireAuth(c)
	if !ok {
		return
	}
	orders, err := h.account.Orders(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}
	limit, offset := httpx.ParseLimitOffset(c, 20, 100)
	if offset > len(orders) {
		offset = len(orders)
	}
	end := offset + limit
	if end > len(orders) {
		end = len(orders)
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders[offset:end], "total": len(orders)})
}

func (h *Handler) listReturns(c *gin.Context) {
	ident, ok := h.requireAuth(c)
	if !ok {
		return
	}
	returns, err := h.account.Returns(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load returns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"returns": returns, "count": len(returns)})
}

func (h *Handler) listReviews(c *gin.Context) {
	ident, ok := h.requireAuth(c)
	if !ok {
		return
	}
	reviews, err := h.account.Reviews(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

func (h *Handler) deleteAccount(c *gin.Context) {
	ident, ok := h.requireAuth(c)
	if !ok {
		return
	}
	if err := h.account.Delete(c.Request.Context(), ident.UserID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete account"})
		return
	}
	_ = h.sessions.Drop(c.Request.Context(), h.sessionID(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
