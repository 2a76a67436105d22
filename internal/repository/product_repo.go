package repository

import (
	"gorm.io/gorm"

	"cartflow/internal/models"
)

// ProductRepository handles product catalog database operations.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindAll returns products, optionally filtered by category.
func (r *ProductRepository) FindAll(category string) ([]models.Product, error) {
	var products []models.Product
	db := r.db.Model(&models.Product{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("id ASC").Find(&products).Error
	return products, err
}

// FindByID returns a product by numeric ID.
func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCode returns a product by its catalog code.
func (r *ProductRepository) FindByCode(code string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("code = ?", code).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Count returns the number of products in the catalog.
func (r *ProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
