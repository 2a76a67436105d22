package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"cartflow/internal/models"
)

// MigrateAndSeed ensures required tables exist and seeds the demo
// catalog when it is empty.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedCatalog(db); err != nil {
		return fmt.Errorf("seed catalog failed: %w", err)
	}
	return nil
}

func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(defaultCatalog()).Error
}

// defaultCatalog is the storefront's demo product set, priced in ETB.
func defaultCatalog() []models.Product {
	return []models.Product{
		{
			Code: "headphones", Name: "Premium Wireless Headphones",
			Price: "299.00", OriginalPrice: "499.00", Category: "audio",
			Image:       "/images/headphones.jpg",
			Description: "Experience crystal-clear audio with our premium wireless headphones featuring active noise cancellation and 30-hour battery life.",
			Features:    `["Active Noise Cancellation","30-hour Battery","Premium Audio Drivers","Wireless Charging"]`,
			InStock:     true,
		},
		{
			Code: "earbuds", Name: "True Wireless Earbuds",
			Price: "149.00", OriginalPrice: "199.00", Category: "audio",
			Image:       "/images/earbuds.jpg",
			Description: "Compact and powerful earbuds with crystal clear sound and all-day comfort for your active lifestyle.",
			Features:    `["Touch Controls","Waterproof IPX7","8-hour Playtime","Fast Charging Case"]`,
			InStock:     true,
		},
		{
			Code: "smartphone", Name: "Latest Smartphone",
			Price: "899.00", OriginalPrice: "1099.00", Category: "mobile",
			Image:       "/images/smartphone.jpg",
			Description: "Cutting-edge smartphone with advanced camera system and lightning-fast performance.",
			Features:    `["Triple Camera System","5G Connectivity","128GB Storage","All-day Battery"]`,
			InStock:     true,
		},
		{
			Code: "laptop", Name: "Professional Laptop",
			Price: "1299.00", OriginalPrice: "1599.00", Category: "computing",
			Image:       "/images/laptop.jpg",
			Description: "High-performance laptop designed for professionals and creators with stunning display.",
			Features:    `["Intel i7 Processor","16GB RAM","512GB SSD","15.6\" 4K Display"]`,
			InStock:     true,
		},
		{
			Code: "smartwatch", Name: "Smart Fitness Watch",
			Price: "249.00", OriginalPrice: "329.00", Category: "wearables",
			Image:       "/images/smartwatch.jpg",
			Description: "Track your fitness goals with this advanced smartwatch featuring health monitoring.",
			Features:    `["Heart Rate Monitor","GPS Tracking","7-day Battery","Water Resistant"]`,
			InStock:     true,
		},
		{
			Code: "keyboard", Name: "Mechanical Gaming Keyboard",
			Price: "129.00", OriginalPrice: "179.00", Category: "gaming",
			Image:       "/images/keyboard.jpg",
			Description: "Professional gaming keyboard with RGB lighting and responsive mechanical switches.",
			Features:    `["RGB Backlighting","Mechanical Switches","Programmable Keys","Durable Build"]`,
			InStock:     true,
		},
		{
			Code: "mouse", Name: "Wireless Gaming Mouse",
			Price: "79.00", OriginalPrice: "99.00", Category: "gaming",
			Image:       "/images/mouse.jpg",
			Description: "Precision gaming mouse with ergonomic design and customizable buttons.",
			Features:    `["16000 DPI Sensor","Wireless Connectivity","Ergonomic Design","80-hour Battery"]`,
			InStock:     true,
		},
		{
			Code: "tablet", Name: "Tablet Pro",
			Price: "599.00", OriginalPrice: "799.00", Category: "computing",
			Image:       "/images/tablet.jpg",
			Description: "Versatile tablet perfect for work and entertainment with stunning display.",
			Features:    `["10.9\" Liquid Retina","A14 Bionic Chip","All-day Battery","Apple Pencil Support"]`,
			InStock:     true,
		},
	}
}
