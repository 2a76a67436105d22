package models

// Product maps to the `product` table: the storefront catalog.
type Product struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code          string `gorm:"column:code;size:100;uniqueIndex" json:"code"`
	Name          string `gorm:"column:name;size:500" json:"name"`
	Price         string `gorm:"column:price;size:50" json:"price"` // ETB, two decimals
	OriginalPrice string `gorm:"column:original_price;size:50" json:"original_price,omitempty"`
	Image         string `gorm:"column:image;size:1000" json:"image"`
	Description   string `gorm:"column:description;type:text" json:"description"`
	Features      string `gorm:"column:features;type:json" json:"features"` // JSON array of strings
	Category      string `gorm:"column:category;size:200" json:"category"`
	InStock       bool   `gorm:"column:in_stock" json:"in_stock"`
}

func (Product) TableName() string {
	return "product"
}
