package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-connect/internal/auth"
	"github.com/iliyamo/gym-connect/internal/handler"
	"github.com/iliyamo/gym-connect/internal/middleware"
	"github.com/iliyamo/gym-connect/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// operations (register, login, verify, refresh) live under /v1/auth behind
// the rate limiter, since they are the brute-force surface.  Logout and /me
// require a live session and sit behind the gating middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, gate *auth.Gate, rl echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", rl)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.GET("/verify/:token", a.VerifyEmail)

	protected := e.Group("/v1", middleware.Auth(gate))
	protected.GET("/me", a.Me)
	protected.POST("/logout", a.Logout)
}

// RegisterSocial registers the profile and feed endpoints.  Public reads go
// through the response cache; writes require an authenticated identity with
// one of the three known roles.
func RegisterSocial(e *echo.Echo, p *handler.ProfileHandler, posts *handler.PostHandler, gate *auth.Gate, cache echo.MiddlewareFunc) {
	e.GET("/v1/feed", posts.Feed, cache)
	e.GET("/v1/profiles/:role/:id", p.GetProfile, cache)

	protected := e.Group("/v1", middleware.Auth(gate),
		middleware.RequireRole(model.RoleGym, model.RoleTrainer, model.RoleGymSeeker))
	protected.GET("/profile", p.GetMyProfile)
	protected.PATCH("/profile/bio", p.UpdateMyBio)
	protected.POST("/posts", posts.CreatePost)
	protected.DELETE("/posts/:id", posts.DeletePost)
}
