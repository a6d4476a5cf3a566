package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// user's role claim names one of the allowed roles. The claim is parsed
// through the closed model.Role set, so an unknown or missing role is
// always rejected with 403 regardless of the allow list. It assumes
// JWTAuth has stored the role claim under the "role" context key.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, _ := c.Get("role").(string)
			role, ok := model.ParseRole(v)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
