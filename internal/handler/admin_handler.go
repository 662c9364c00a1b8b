package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/muhsinkalodi/qmexai-ecom/internal/invoice"
	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
	"github.com/muhsinkalodi/qmexai-ecom/internal/service"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/logger"
)

// AdminHandler serves the /admin router group. Every route is gated by the
// admin middleware.
type AdminHandler struct {
	auth    *service.AuthService
	orders  *service.OrderService
	reports *service.ReportService
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(auth *service.AuthService, orders *service.OrderService, reports *service.ReportService) *AdminHandler {
	return &AdminHandler{auth: auth, orders: orders, reports: reports}
}

// ListOrders handles GET /admin/orders
func (h *AdminHandler) ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	orders, err := h.orders.ListAll(c.Request().Context(), skip, limit)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ViewOrder handles GET /admin/orders/:id. Viewing a Pending order moves it
// to Processing.
func (h *AdminHandler) ViewOrder(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	order, err := h.orders.AdminView(c.Request().Context(), id)
	if err != nil {
		log.Error("Failed to fetch order", zap.Uint("order_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Order viewed by admin",
		zap.Uint("order_id", order.ID),
		zap.String("status", order.Status))
	return c.JSON(http.StatusOK, order)
}

// Invoice handles GET /admin/orders/:id/invoice and streams a PDF
func (h *AdminHandler) Invoice(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	order, err := h.orders.AdminView(c.Request().Context(), id)
	if err != nil {
		log.Error("Failed to fetch order for invoice", zap.Uint("order_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	var customer *model.User
	customer, err = h.auth.GetUser(c.Request().Context(), order.UserID)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		return respondError(c, log, err)
	}

	pdf, err := invoice.Render(order, customer)
	if err != nil {
		log.Error("Failed to render invoice", zap.Uint("order_id", order.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate invoice"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice_%d.pdf"`, order.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c echo.Context) error {
	log := logger.FromContext(c)

	stats, err := h.reports.Stats(c.Request().Context())
	if err != nil {
		log.Error("Failed to compute stats", zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}
