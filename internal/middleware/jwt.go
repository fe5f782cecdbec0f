package middleware

import (
	"context"
	"net/http"

	"menucraft/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig builds the echo-jwt configuration used on protected routes.
func JWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(jwtSecret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// ScopeFromToken copies the validated token claims into the request context.
// Tokens carry the tenant and optional branch directly so no lookup is needed
// per request. Must run after the echo-jwt middleware.
func ScopeFromToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing user_id in token")
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user_id format")
			}

			tenantClaim, ok := claims["tenant_id"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing tenant_id in token")
			}
			tenantID, err := uuid.Parse(tenantClaim)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid tenant_id format")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.TenantIDKey, tenantID)

			// Branch scope is optional: tokens without it address tenant-wide
			// resources only.
			if branchClaim, ok := claims["branch_id"].(string); ok {
				branchID, err := uuid.Parse(branchClaim)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid branch_id format")
				}
				ctx = context.WithValue(ctx, common.BranchIDKey, branchID)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetTenantIDFromContext extracts tenant ID from request context
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(common.TenantIDKey).(uuid.UUID)
	return tenantID, ok
}
