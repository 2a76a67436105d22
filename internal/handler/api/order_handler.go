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

// OrderHandler serves the persisted payment audit trail.
type OrderHandler struct {
	orders *repository.OrderRepository
	logger *zap.Logger
}

func NewOrderHandler(orders *repository.OrderRepository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// List handles GET /api/orders with limit/page query params.
func (h *OrderHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	orders, total, err := h.orders.FindAll(limit, page)
	if err != nil {
		h.logger.Error("order list failed", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "could not load orders")
	}
	return successResponse(c, "orders", map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

// Get handles GET /api/orders/:order_no.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orders.FindByOrderNo(c.Param("order_no"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorResponse(c, http.StatusNotFound, "order not found")
	}
	if err != nil {
		h.logger.Error("order lookup failed", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "could not load order")
	}
	return successResponse(c, "order", order)
}
