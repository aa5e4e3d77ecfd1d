// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"evently/internal/delivery/api/middleware"
	"evently/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	EventHandler   *handler.EventHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	eventHandler   *handler.EventHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		eventHandler:   params.EventHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Only event creation sits behind the authorization gate.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Welcome)
	e.GET("/health", handler.HealthCheck)

	// Credential routes
	e.POST("/register", r.userHandler.Register)
	e.POST("/login", r.userHandler.Login)

	// Event routes
	eventsGroup := e.Group("/events")
	{
		eventsGroup.GET("", r.eventHandler.ListEvents)
		eventsGroup.POST("", r.eventHandler.CreateEvent, r.authMiddleware.Authenticate)
		eventsGroup.GET("/:id", r.eventHandler.GetEvent)
		eventsGroup.GET("/:id/qr", r.eventHandler.GetEventQR)
	}
}
