package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-connect/internal/auth"
)

// identityKey is the echo context key under which the authenticated identity
// is stored for the duration of the request.
const identityKey = "identity"

// Auth returns the gating middleware for protected routes.  It pulls the
// bearer token from the access_token cookie or the Authorization header,
// runs it through the gate (signature, temporal claims, live session record,
// subject cross-check) and stores the resulting identity in the request
// context.  Every failure, whatever its internal kind, produces the same
// 401 body so callers cannot probe which stage rejected them.
func Auth(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			id, err := gate.Authenticate(c.Request().Context(), raw)
			if err != nil {
				c.Logger().Debugf("auth: %v", err)
				return unauthenticated(c)
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity stored by Auth.  The second return is
// false on routes that are not behind the middleware.
func CurrentIdentity(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityKey).(auth.Identity)
	return id, ok
}

// tokenFromRequest prefers the access_token cookie and falls back to a
// Bearer authorization header.  Returns "" when neither is present.
func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie("access_token"); err == nil && ck.Value != "" {
		return ck.Value
	}
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
}
