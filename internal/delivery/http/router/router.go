// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler      *handler.SessionHandler
	StatusHandler       *handler.StatusHandler
	ProductHandler      *handler.ProductHandler
	CartHandler         *handler.CartHandler
	OrderHandler        *handler.OrderHandler
	ReviewHandler       *handler.ReviewHandler
	DiscountHandler     *handler.DiscountHandler
	NotificationHandler *handler.NotificationHandler
	SessionMiddleware   *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	e.GET("/health", handler.HealthCheck)
	e.GET("/status", p.StatusHandler.Status)

	session := e.Group("/session")
	{
		session.POST("/login", p.SessionHandler.Login)
		session.POST("/register", p.SessionHandler.Register)
		session.POST("/logout", p.SessionHandler.Logout)
		session.GET("", p.SessionHandler.Current)
		session.GET("/profile", p.SessionHandler.Profile, p.SessionMiddleware.Resolve)
	}

	// Everything below carries the stored session, when there is one.
	api := e.Group("", p.SessionMiddleware.Resolve)

	products := api.Group("/products")
	{
		products.GET("", p.ProductHandler.List)
		products.GET("/categories", p.ProductHandler.Categories)
		products.GET("/:id", p.ProductHandler.Get)
		products.POST("", p.ProductHandler.Create)
		products.PUT("/:id", p.ProductHandler.Update)
		products.DELETE("/:id", p.ProductHandler.Delete)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", p.CartHandler.Get)
		cart.POST("/items", p.CartHandler.Add)
		cart.DELETE("/items/:productId", p.CartHandler.Remove)
		cart.POST("/checkout", p.CartHandler.Checkout)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", p.OrderHandler.List)
		orders.GET("/:id", p.OrderHandler.Get)
		orders.PUT("/:id/status", p.OrderHandler.UpdateStatus)
		orders.DELETE("/:id", p.OrderHandler.Delete)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", p.ReviewHandler.List)
		reviews.GET("/:id", p.ReviewHandler.Get)
		reviews.POST("", p.ReviewHandler.Create)
		reviews.PUT("/:id", p.ReviewHandler.Update)
		reviews.DELETE("/:id", p.ReviewHandler.Delete)
	}

	discounts := api.Group("/discounts")
	{
		discounts.GET("", p.DiscountHandler.List)
		discounts.POST("", p.DiscountHandler.Create)
		discounts.POST("/apply", p.DiscountHandler.Apply)
		discounts.GET("/:id", p.DiscountHandler.Get)
		discounts.GET("/:id/qrcode", p.DiscountHandler.QRCode)
		discounts.PUT("/:id", p.DiscountHandler.Update)
		discounts.DELETE("/:id", p.DiscountHandler.Delete)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", p.NotificationHandler.History)
		notifications.DELETE("", p.NotificationHandler.Clear)
		notifications.POST("/read", p.NotificationHandler.MarkAllRead)
		notifications.POST("/:id/read", p.NotificationHandler.MarkRead)
		notifications.GET("/discounts", p.NotificationHandler.NewDiscounts)
		notifications.DELETE("/discounts", p.NotificationHandler.AcknowledgeNewDiscounts)
		notifications.POST("/receive", p.NotificationHandler.Receive)
	}
}
