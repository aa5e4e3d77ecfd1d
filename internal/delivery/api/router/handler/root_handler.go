package handler

import (
	"net/http"

	"evently/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

const welcomeText = "Welcome to the Event Management API"

// Welcome answers GET / with a plain-text greeting.
func Welcome(c echo.Context) error {
	return c.String(http.StatusOK, welcomeText)
}

// HealthCheck reports liveness. It does not touch the database.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
