package rest

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/pkg/ctxmeta"
)

const (
	sessionCookie = "sid"
	// срок жизни cookie совпадает с TTL сессии в хранилище
	sessionCookieMaxAge = 7 * 24 * 60 * 60

	identityKey    = "identity"
	ctxIdentityKey = "ctx-identity"
	ctxSessionKey  = "ctx-session"
)

// sessionMiddleware выдаёт анонимную сессию по cookie и поднимает личность
// пользователя из хранилища сессий, если он авторизован.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, sessionCookieMaxAge, "/", "", false, true)
		}

		ctx := ctxmeta.WithSessionID(c.Request.Context(), sid)

		var ident *domain.Identity
		if raw, ok := h.sessions.GetValue(ctx, sid, identityKey); ok {
			var id domain.Identity
			if err := cbor.Unmarshal(raw, &id); err == nil && id.UserID > 0 {
				ident = &id
				ctx = ctxmeta.WithUserID(ctx, id.UserID)
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxSessionKey, sid)
		if ident != nil {
			c.Set(ctxIdentityKey, ident)
		}
		c.Next()
	}
}

func (h *Handler) sessionID(c *gin.Context) string {
	if v, ok := c.Get(ctxSessionKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (h *Handler) identity(c *gin.Context) *domain.Identity {
	if v, ok := c.Get(ctxIdentityKey); ok {
		if id, ok := v.(*domain.Identity); ok {
			return id
		}
	}
	return nil
}

// requireAuth возвращает личность либо завершает запрос кодом 401.
func (h *Handler) requireAuth(c *gin.Context) (*domain.Identity, bool) {
	ident := h.identity(c)
	if ident == nil {
		c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
		return nil, false
	}
	return ident, true
}

func (h *Handler) storeIdentity(c *gin.Context, ident *domain.Identity) error {
	raw, err := cbor.Marshal(ident)
	if err != nil {
		return err
	}
	return h.sessions.SetValue(c.Request.Context(), h.sessionID(c), identityKey, raw)
}
