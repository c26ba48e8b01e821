package routes

import (
	"arabianx/auth"
	"arabianx/cart"
	"arabianx/middleware"
	"arabianx/orders"
	"arabianx/pay"
	"arabianx/products"
	"arabianx/ratelim"
	"arabianx/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
}

func AddProductRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/products/:productid", products.GetProduct)

	router.POST("/api/products",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireRoles("admin", "superadmin"),
		)(products.CreateProduct),
	)
	router.PUT("/api/products/:productid",
		middleware.Chain(
			middleware.Authenticate,
			middleware.RequireRoles("admin", "superadmin"),
		)(products.UpdateProduct),
	)
	router.DELETE("/api/products/:productid",
		middleware.Chain(
			middleware.Authenticate,
			middleware.RequireRoles("admin", "superadmin"),
		)(products.DeleteProduct),
	)
}

func AddCartRoutes(router *httprouter.Router, _ *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", middleware.Authenticate(cart.UpdateCart))
}

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, hub *orders.Hub) {
	// Guests check out too, so auth is optional on create.
	router.POST("/api/orders", rateLimiter.Limit(middleware.OptionalAuth(orders.CreateOrder)))

	router.GET("/api/orders",
		middleware.Chain(
			middleware.Authenticate,
			middleware.RequireRoles("admin", "superadmin"),
		)(orders.GetAllOrders),
	)
	router.GET("/api/orders/stats",
		middleware.Chain(
			middleware.Authenticate,
			middleware.RequireRoles("admin", "superadmin"),
		)(orders.GetOrderStats),
	)
	router.GET("/api/orders/my-orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/feed", middleware.Authenticate(hub.Feed))

	router.GET("/api/orders/order/:orderid", middleware.Authenticate(orders.GetOrderByID))
	router.GET("/api/orders/order/:orderid/receipt", middleware.Authenticate(orders.PrintReceipt))
	router.PUT("/api/orders/order/:orderid/status",
		middleware.Chain(
			middleware.Authenticate,
			middleware.RequireRoles("admin", "superadmin"),
		)(orders.UpdateOrderStatus),
	)
}

func AddPayRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, payService *pay.Service) {
	router.POST("/api/payment/create-preference", rateLimiter.Limit(payService.CreatePreference))
	// Mercado Pago delivers notifications as POST with query params.
	router.POST("/api/payment/webhook", payService.ReceiveWebhook)
}

func AddReviewsRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/reviews", rateLimiter.Limit(middleware.Authenticate(reviews.CreateReview)))
	router.GET("/api/reviews/product/:productid", reviews.GetProductReviews)
	router.GET("/api/reviews/product/:productid/check", middleware.Authenticate(reviews.CheckUserReview))
	router.DELETE("/api/reviews/review/:reviewid", middleware.Authenticate(reviews.DeleteReview))
}

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, payService *pay.Service, hub *orders.Hub) {
	AddAuthRoutes(router, rateLimiter)
	AddProductRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter, hub)
	AddPayRoutes(router, rateLimiter, payService)
	AddReviewsRoutes(router, rateLimiter)
}
