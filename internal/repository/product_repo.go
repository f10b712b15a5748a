package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/brijnamkeen/store_api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
	id, name, description, price, category, image, images, weight, stock,
	is_active, is_best_seller, is_palm_oil_free, created_at, updated_at`

// ListActive returns active products newest first, with optional exact
// category filter and case-insensitive substring search on name, plus the
// total count for pagination. Page begins at 1.
func (r *ProductRepository) ListActive(category, search string, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 12
	}
	offset := (page - 1) * limit

	const baseWhere = `WHERE is_active = true
		AND ($1 = '' OR category = $1)
		AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) FROM products `+baseWhere, category, search); err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := r.db.Select(&products, `
		SELECT `+productColumns+` FROM products `+baseWhere+`
		ORDER BY created_at DESC LIMIT $3 OFFSET $4
	`, category, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAll returns every product, active or not, newest first with pagination.
func (r *ProductRepository) ListAll(page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) FROM products`); err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := r.db.Select(&products, `
		SELECT `+productColumns+` FROM products
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	var p models.Product
	err := r.db.Get(&p, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DistinctCategories returns the distinct category names of active products.
func (r *ProductRepository) DistinctCategories() ([]string, error) {
	var categories []string
	err := r.db.Select(&categories, `
		SELECT DISTINCT category FROM products WHERE is_active = true ORDER BY category
	`)
	return categories, err
}

// ByCategoryName returns active products whose category exactly equals name,
// newest first, capped at limit.
func (r *ProductRepository) ByCategoryName(name string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(&products, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = true AND category = $1
		ORDER BY created_at DESC LIMIT $2
	`, name, limit)
	return products, err
}

// BestSellers returns active best-seller products across all categories,
// newest first, capped at limit.
func (r *ProductRepository) BestSellers(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(&products, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = true AND is_best_seller = true
		ORDER BY created_at DESC LIMIT $1
	`, limit)
	return products, err
}

// PalmOilFree returns active palm-oil-free products across all categories,
// newest first, capped at limit.
func (r *ProductRepository) PalmOilFree(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(&products, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = true AND is_palm_oil_free = true
		ORDER BY created_at DESC LIMIT $1
	`, limit)
	return products, err
}

// Create inserts a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	query := `
		INSERT INTO products
			(name, description, price, category, image, images, weight, stock,
			 is_active, is_best_seller, is_palm_oil_free)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(query,
		p.Name, p.Description, p.Price, p.Category, p.Image, pq.Array(p.Images),
		p.Weight, p.Stock, p.IsActive, p.IsBestSeller, p.IsPalmOilFree,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update writes all mutable product fields.
func (r *ProductRepository) Update(p *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, image = $6,
		    images = $7, weight = $8, stock = $9, is_active = $10,
		    is_best_seller = $11, is_palm_oil_free = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.db.QueryRow(query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Image,
		pq.Array(p.Images), p.Weight, p.Stock, p.IsActive,
		p.IsBestSeller, p.IsPalmOilFree,
	).Scan(&p.UpdatedAt)
}

// SoftDelete deactivates a product.
func (r *ProductRepository) SoftDelete(id int) error {
	res, err := r.db.Exec(`
		UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
