package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/muhsinkalodi/qmexai-ecom/internal/service"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/logger"
	"github.com/muhsinkalodi/qmexai-ecom/prometheus"
)

// ProductHandler serves the /products router group
type ProductHandler struct {
	catalog *service.CatalogService
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	products, err := h.catalog.List(c.Request().Context(), skip, limit)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		log.Error("Product not found", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products (admin)
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product, err := h.catalog.Create(c.Request().Context(), req)
	if err != nil {
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("discount_price", product.DiscountPrice))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id (admin)
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("update")

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product, err := h.catalog.Update(c.Request().Context(), id, req)
	if err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id (admin)
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("delete")

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"detail": "Product deleted successfully"})
}

// ApplyBulkDiscount handles POST /products/bulk-discount (admin)
func (h *ProductHandler) ApplyBulkDiscount(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("bulk_discount")

	var req struct {
		Category           string  `json:"category"`
		DiscountPercentage float64 `json:"discount_percentage"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	count, err := h.catalog.ApplyBulkDiscount(c.Request().Context(), req.Category, req.DiscountPercentage)
	if err != nil {
		log.Error("Failed to apply bulk discount",
			zap.String("category", req.Category),
			zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Bulk discount applied",
		zap.String("category", req.Category),
		zap.Float64("percentage", req.DiscountPercentage),
		zap.Int("updated", count))
	return c.JSON(http.StatusOK, echo.Map{
		"detail":  "Bulk discount applied",
		"updated": count,
	})
}

// SeedProducts handles POST /products/seed (admin)
func (h *ProductHandler) SeedProducts(c echo.Context) error {
	log := logger.FromContext(c)

	seeded, err := h.catalog.Seed(c.Request().Context())
	if err != nil {
		log.Error("Failed to seed products", zap.Error(err))
		return respondError(c, log, err)
	}
	if !seeded {
		return c.JSON(http.StatusOK, echo.Map{"detail": "Database already populated"})
	}

	log.Info("Dummy catalog seeded")
	return c.JSON(http.StatusOK, echo.Map{"detail": "Dummy data seeded"})
}

// queryInt parses an integer query parameter with a default
func queryInt(c echo.Context, name string, defaultValue int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// paramID parses the :id path parameter
func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
