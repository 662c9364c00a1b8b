package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
	"github.com/muhsinkalodi/qmexai-ecom/internal/service"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/logger"
	"github.com/muhsinkalodi/qmexai-ecom/prometheus"
)

const userContextKey = "current_user"

// Auth validates the Bearer token from the Authorization header and stores
// the resolved identity in the request context
func Auth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Error("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Error("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				log.Error("Invalid session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// AdminOnly rejects authenticated requests whose identity lacks the admin
// flag. Must run after Auth.
func AdminOnly(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if err := auth.RequireAdmin(user); err != nil {
				logger.FromContext(c).Warn("Admin access denied",
					zap.Uint("user_id", userID(user)))
				prometheus.RecordAuthError("forbidden")
				return c.JSON(http.StatusForbidden, echo.Map{"error": "You do not have administrative privileges."})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the identity attached by Auth, or nil
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func userID(user *model.User) uint {
	if user == nil {
		return 0
	}
	return user.ID
}
