package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/handler"
    "github.com/mzhydenko/airport-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under /api/user plus
// the protected /api/user/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/api/user")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    // Logout accepts either a refresh_token body or a bearer token; it lives
    // outside the JWT group so a session can be closed with the refresh
    // token alone.
    g.POST("/logout", a.Logout)

    auth := e.Group("/api/user", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// APIHandlers bundles the resource handlers wired by RegisterAPI.
type APIHandlers struct {
    Catalog   *handler.CatalogHandler
    Airports  *handler.AirportHandler
    Airplanes *handler.AirplaneHandler
    Routes    *handler.RouteHandler
    Flights   *handler.FlightHandler
    Orders    *handler.OrderHandler
}

// RegisterAPI registers all airport resources under /api/airport.  Every
// route requires a valid JWT; per-resource authorization is decided by the
// policy table.  cacheMW wraps the read-heavy reference listings; flight and
// order reads bypass the cache because their availability data must be fresh.
func RegisterAPI(e *echo.Echo, h APIHandlers, jwtSecret string, policy *middleware.Policy, cacheMW echo.MiddlewareFunc) {
    g := e.Group("/api/airport", middleware.JWTAuth(jwtSecret))

    // ---- Reference data ----
    types := g.Group("/airplane-types", middleware.Authorize(policy, "airplane-types"))
    types.GET("", h.Catalog.ListAirplaneTypes, cacheMW)
    types.POST("", h.Catalog.CreateAirplaneType)

    countries := g.Group("/countries", middleware.Authorize(policy, "countries"))
    countries.GET("", h.Catalog.ListCountries, cacheMW)
    countries.POST("", h.Catalog.CreateCountry)

    crews := g.Group("/crews", middleware.Authorize(policy, "crews"))
    crews.GET("", h.Catalog.ListCrews, cacheMW)
    crews.POST("", h.Catalog.CreateCrew)

    airports := g.Group("/airports", middleware.Authorize(policy, "airports"))
    airports.GET("", h.Airports.List, cacheMW)
    airports.POST("", h.Airports.Create)

    // ---- Airplanes ----
    airplanes := g.Group("/airplanes", middleware.Authorize(policy, "airplanes"))
    airplanes.GET("", h.Airplanes.List, cacheMW)
    airplanes.POST("", h.Airplanes.Create)
    airplanes.GET("/:id", h.Airplanes.Retrieve)
    airplanes.POST("/:id/upload-image", h.Airplanes.UploadImage,
        middleware.Authorize(policy, "airplane-images"))

    // ---- Routes ----
    routes := g.Group("/routes", middleware.Authorize(policy, "routes"))
    routes.GET("", h.Routes.List, cacheMW)
    routes.POST("", h.Routes.Create)
    routes.GET("/:id", h.Routes.Retrieve)

    // ---- Flights ----
    flights := g.Group("/flights", middleware.Authorize(policy, "flights"))
    flights.GET("", h.Flights.List)
    flights.POST("", h.Flights.Create)
    flights.GET("/:id", h.Flights.Retrieve)

    // ---- Orders ----
    orders := g.Group("/orders", middleware.Authorize(policy, "orders"))
    orders.GET("", h.Orders.List)
    orders.POST("", h.Orders.Create)
    orders.GET("/:id", h.Orders.Retrieve)
}

// RegisterMedia exposes uploaded files (airplane images) under /media.
func RegisterMedia(e *echo.Echo, mediaRoot string) {
    e.Static("/media", mediaRoot)
}
