package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lungscan/scan-api/internal/api/middleware"
	"github.com/lungscan/scan-api/internal/core/domain"
)

// ctxDoctor extracts the doctor injected by the Auth middleware. Its absence
// means a route was registered without the middleware; fail closed.
func ctxDoctor(c echo.Context) (*domain.Doctor, error) {
	doctor, _ := c.Get(middleware.DoctorContextKey).(*domain.Doctor)
	if doctor == nil || doctor.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return doctor, nil
}
