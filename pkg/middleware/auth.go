// Package middleware provides HTTP middleware for the pokedex API.
package middleware

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/arturpasiut/poke-sky-api/pkg/appcontext"
)

// HeaderAuth extracts the user id from the X-User-ID header when real auth is
// disabled. The session protocol itself lives outside this service; handlers
// only consume the "current user id" signal from the context.
//
// WARNING: Only use this when AUTH_ENABLED=false. Do not enable in production.
func HeaderAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID := c.Request().Header.Get(HeaderUserID)
			if userID != "" {
				ctx = appcontext.SetUserID(ctx, userID)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireUser rejects requests that carry no user identity.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if appcontext.GetUserID(c.Request().Context()) == "" {
				return httperror.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
