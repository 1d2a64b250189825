package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth; logout is also
// reachable at /v1/logout and works with either a bearer token or a
// refresh token in the body.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)
}

// RegisterHotel mounts every tenant-scoped endpoint under /v1 behind
// JWT authentication, the OWNER role gate and the Redis token-bucket
// rate limiter.  Dashboard and calendar reads additionally go through
// the per-tenant response cache.  A nil Redis client degrades both
// the limiter and the cache to no-ops.
func RegisterHotel(e *echo.Echo, jwtSecret string, rdb *redis.Client,
	a *handler.AuthHandler, rooms *handler.RoomHandler, reservations *handler.ReservationHandler,
	dashboard *handler.DashboardHandler, calendar *handler.CalendarHandler, settings *handler.SettingsHandler) {

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OWNER"))
	auth.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth.GET("/me", a.Me)
	auth.POST("/change-password", a.ChangePassword)

	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	auth.GET("/dashboard/stats", dashboard.GetStats, cached)
	auth.GET("/calendar", calendar.GetMonth, cached)

	auth.GET("/rooms", rooms.List)
	auth.POST("/rooms", rooms.Create)
	auth.PUT("/rooms/:id", rooms.Update)
	auth.DELETE("/rooms/:id", rooms.Delete)

	auth.GET("/reservations", reservations.List)
	auth.POST("/reservations", reservations.Create)
	auth.GET("/reservations/:id", reservations.Get)
	auth.PUT("/reservations/:id", reservations.Update)
	auth.DELETE("/reservations/:id", reservations.Delete)
	auth.POST("/reservations/:id/checkin", reservations.CheckIn)
	auth.POST("/reservations/:id/checkout", reservations.CheckOut)
	auth.POST("/reservations/:id/cancel", reservations.Cancel)

	auth.GET("/settings", settings.Get)
	auth.PUT("/settings", settings.Update)
}
