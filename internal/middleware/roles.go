package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"infocomm/internal/common"
	"infocomm/internal/session"
)

// RequireRole gates a route group on the shared access rule. The session
// placed on the context by SessionFromClaims is by definition authenticated
// and restored, so only the role check can redirect here.
func RequireRole(required session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := common.GetSessionFromContext(c.Request().Context())

			decision := session.Authorize(session.StateAuthenticated, true, sess, &required)
			switch decision {
			case session.DecisionAllow:
				return next(c)
			case session.DecisionRedirectUnauthorized:
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
		}
	}
}
