package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/internal/usecase"
	"github.com/kursovoi/storefront/pkg/httpx"
)

type Handler struct {
	catalog   *usecase.CatalogService
	cart      *usecase.CartService
	checkout  *usecase.CheckoutService
	account   *usecase.AccountService
	analytics ports.AnalyticsRepository // nil — отчётная база выключена
	sessions  ports.SessionStore
	log       ports.Logger
}

func NewHandler(
	catalog *usecase.CatalogService,
	cart *usecase.CartService,
	checkout *usecase.CheckoutService,
	account *usecase.AccountService,
	analytics ports.AnalyticsRepository,
	sessions ports.SessionStore,
	log ports.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		cart:      cart,
		checkout:  checkout,
		account:   account,
		analytics: analytics,
		sessions:  sessions,
		log:       log,
	}
}

// NewRouter собирает маршруты витрины. otelServiceName непустой —
// включается otelgin-трейсинг.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(h.sessionMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.GET("/stores", h.listStores)
		api.GET("/stores/:id", h.getStore)

		api.GET("/cart", h.viewCart)
		api.GET("/cart/count", h.cartCount)
		api.POST("/cart", h.addToCart)
		api.PUT("/cart", h.updateCart)
		api.DELETE("/cart/:productId", h.removeFromCart)
		api.DELETE("/cart", h.clearCart)

		api.POST("/checkout", h.reviewCheckout)
		api.POST("/checkout/confirm", h.confirmCheckout)

		api.POST("/auth/login", h.login)
		api.POST("/auth/register", h.register)
		api.POST("/auth/logout", h.logout)

		api.GET("/account/orders", h.listOrders)
		api.GET("/account/returns", h.listReturns)
		api.GET("/account/reviews", h.listReviews)
		api.DELETE("/account", h.deleteAccount)

		admin := api.Group("/admin/analytics")
		admin.GET("/stores", h.salesByStore)
		admin.GET("/products", h.topProducts)
	}

	return r
}
