// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"libris/internal/delivery/http/middleware"
	"libris/internal/delivery/http/router/handler"
	"libris/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CatalogHandler *handler.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	catalogHandler *handler.CatalogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		catalogHandler: params.CatalogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Credential routes are the only anonymous surface
	e.POST("/signup", r.authHandler.Signup)
	e.POST("/login", r.authHandler.Login)

	// Catalog routes all sit behind the bearer-token gate
	booksGroup := e.Group("/books")
	booksGroup.Use(r.authMiddleware.Authenticate)
	{
		booksGroup.GET("", r.catalogHandler.ListBooks)
		booksGroup.POST("", r.catalogHandler.CreateBook)
		booksGroup.GET("/search", r.catalogHandler.SearchBooks)
		// Destructive maintenance additionally requires the admin role
		booksGroup.DELETE("/:id", r.catalogHandler.DeleteBook, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}
}
