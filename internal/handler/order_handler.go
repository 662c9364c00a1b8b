package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/muhsinkalodi/qmexai-ecom/internal/middleware"
	"github.com/muhsinkalodi/qmexai-ecom/internal/service"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/logger"
	"github.com/muhsinkalodi/qmexai-ecom/prometheus"
)

// OrderHandler serves the /orders router group
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout handles POST /orders/checkout
func (h *OrderHandler) Checkout(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.CheckoutCounter.Inc()

	var req struct {
		Items           []service.CheckoutItem `json:"items"`
		ShippingAddress string                 `json:"shipping_address"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse checkout request", zap.Error(err))
		prometheus.RecordCheckoutFailure("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user := middleware.CurrentUser(c)

	defer prometheus.TrackDBOperation("transaction")(time.Now())
	order, err := h.orders.Checkout(c.Request().Context(), user, req.Items, req.ShippingAddress)
	if err != nil {
		log.Error("Checkout failed",
			zap.Uint("user_id", user.ID),
			zap.Int("lines", len(req.Items)),
			zap.Error(err))
		prometheus.RecordCheckoutFailure(checkoutFailureReason(err))
		return respondError(c, log, err)
	}

	prometheus.OrderValueHistogram.Observe(order.TotalAmount)
	log.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", user.ID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("lines", len(order.Items)))
	return c.JSON(http.StatusCreated, order)
}

// MyOrders handles GET /orders/my-orders
func (h *OrderHandler) MyOrders(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	orders, err := h.orders.ListMine(c.Request().Context(), user, skip, limit)
	if err != nil {
		log.Error("Failed to list orders", zap.Uint("user_id", user.ID), zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	order, err := h.orders.Get(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		log.Error("Failed to fetch order", zap.Uint("order_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, order)
}

func checkoutFailureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		return "empty_order"
	case errors.Is(err, service.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, service.ErrNotFound):
		return "product_not_found"
	default:
		return "storage"
	}
}
