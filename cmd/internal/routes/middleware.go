package routes

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"hms/cmd/internal/token"
	"hms/cmd/internal/utils/apierror"
)

const claimsContextKey = "auth_claims"

type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// RequireAuth extracts and verifies the bearer token and stores its
// claims in the request context. Rejections happen before any handler
// runs, so an unauthenticated request has no side effects.
func RequireAuth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			const prefix = "Bearer "
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, prefix) {
				return c.JSON(apierror.UnauthorizedError.Code(), apierror.UnauthorizedError)
			}

			claims, err := parser.Parse(strings.TrimSpace(header[len(prefix):]))
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					return c.JSON(apierror.TokenExpiredError.Code(), apierror.TokenExpiredError)
				}
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated callers whose role does not match.
// Must run after RequireAuth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return c.JSON(apierror.UnauthorizedError.Code(), apierror.UnauthorizedError)
			}
			if claims.Role != role {
				return c.JSON(apierror.ForbiddenError.Code(), apierror.ForbiddenError)
			}
			return next(c)
		}
	}
}

func ClaimsFrom(c echo.Context) *token.Claims {
	claims, _ := c.Get(claimsContextKey).(*token.Claims)
	return claims
}
