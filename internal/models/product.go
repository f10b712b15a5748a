package models

import (
	"time"

	"github.com/lib/pq"
)

// DefaultProductImage is used when a product has no uploaded images.
const DefaultProductImage = "/images/default-product.jpg"

// Product is a store item. Category is a plain string matched against
// Category.Name; soft deletes flip IsActive.
type Product struct {
	ID            int            `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Description   string         `db:"description" json:"description"`
	Price         float64        `db:"price" json:"price"`
	Category      string         `db:"category" json:"category"`
	Image         string         `db:"image" json:"image"`
	Images        pq.StringArray `db:"images" json:"images"`
	Weight        string         `db:"weight" json:"weight"`
	Stock         int            `db:"stock" json:"stock"`
	IsActive      bool           `db:"is_active" json:"isActive"`
	IsBestSeller  bool           `db:"is_best_seller" json:"isBestSeller"`
	IsPalmOilFree bool           `db:"is_palm_oil_free" json:"isPalmOilFree"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`
}
