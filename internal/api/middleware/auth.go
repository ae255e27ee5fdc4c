package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lungscan/scan-api/internal/api/metrics"
	"github.com/lungscan/scan-api/internal/core/domain"
	"github.com/lungscan/scan-api/internal/core/ports"
)

// DoctorContextKey is where the authenticated doctor is stored on the echo
// context.
const DoctorContextKey = "doctor"

// Auth validates the bearer token, resolves the doctor it identifies, and
// injects the identity into the request context. When bypass is true (or no
// auth service exists because the process runs without a database) a fixed
// development identity is injected instead.
func Auth(auth ports.AuthService, bypass bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if bypass || auth == nil {
				c.Set(DoctorContextKey, domain.DevDoctor())
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenMissing.Error())
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenInvalid.Error())
			}

			doctor, err := auth.ResolveToken(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					metrics.AuthFailuresTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenExpired.Error())
				case errors.Is(err, domain.ErrTokenInvalid):
					metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenInvalid.Error())
				default:
					return err
				}
			}

			c.Set(DoctorContextKey, doctor)
			return next(c)
		}
	}
}
