package repository

import (
	"gorm.io/gorm"

	"cartflow/internal/models"
)

// OrderRepository handles the payment audit trail.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindAll returns orders with pagination, newest first.
func (r *OrderRepository) FindAll(limit, page int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	db := r.db.Model(&models.Order{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	if err := db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindByOrderNo returns an order by its order number.
func (r *OrderRepository) FindByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Create creates a new order row.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// UpdateByOrderNo updates an order by order number.
func (r *OrderRepository) UpdateByOrderNo(orderNo string, updates map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("order_no = ?", orderNo).Updates(updates).Error
}
