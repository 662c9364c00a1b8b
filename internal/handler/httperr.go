package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/muhsinkalodi/qmexai-ecom/internal/service"
)

// respondError maps a service error to its HTTP status. Validation outcomes
// keep their message; storage failures are logged and hidden behind a
// generic 500.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var storageErr *service.StorageError
	if errors.As(err, &storageErr) {
		log.Error("Storage failure", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateIdentity),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInsufficientStock):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		log.Error("Unexpected error", zap.Error(err))
		return c.JSON(status, echo.Map{"error": "internal server error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
