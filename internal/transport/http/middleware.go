package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/domain"
	"github.com/nspraveen/tripnest/internal/session"
	"github.com/nspraveen/tripnest/internal/util"
)

const contextPrincipalKey = "tripnest.principal"

// RequireSession gates a route on the locally signed-in principal and
// stashes it in the request context.
func RequireSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := sessions.Current()
			if principal == nil {
				return c.JSON(http.StatusUnauthorized, util.Error("sign in required"))
			}
			c.Set(contextPrincipalKey, *principal)
			return next(c)
		}
	}
}

func RequireAdmin(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := CurrentPrincipal(c)
			if !ok {
				if p := sessions.Current(); p != nil {
					principal = *p
					ok = true
				}
			}
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Error("sign in required"))
			}
			if principal.Role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
			}
			c.Set(contextPrincipalKey, principal)
			return next(c)
		}
	}
}

func CurrentPrincipal(c echo.Context) (domain.Principal, bool) {
	principal, ok := c.Get(contextPrincipalKey).(domain.Principal)
	return principal, ok
}
