package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cartflow/internal/repository"
)

// ProductHandler serves the storefront catalog.
type ProductHandler struct {
	products *repository.ProductRepository
	logger   *zap.Logger
}

func NewProductHandler(products *repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.FindAll(c.QueryParam("category"))
	if err != nil {
		h.logger.Error("product list failed", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "could not load products")
	}
	return successResponse(c, "products", products)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.products.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}
	if err != nil {
		h.logger.Error("product lookup failed", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "could not load product")
	}
	return successResponse(c, "product", product)
}
