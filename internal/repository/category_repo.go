package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/brijnamkeen/store_api/internal/models"
)

// CategoryRepository handles data access for home-page categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `
	id, name, description, icon, display_order, show_on_home,
	is_special_slot, slot_type, is_active, created_at, updated_at`

// GetActive returns all active categories in display order.
func (r *CategoryRepository) GetActive() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Select(&categories, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE is_active = true
		ORDER BY display_order, name
	`)
	return categories, err
}

// GetHome returns active categories flagged for the home page, in display
// order with name as tie-breaker.
func (r *CategoryRepository) GetHome() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Select(&categories, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE is_active = true AND show_on_home = true
		ORDER BY display_order, name
	`)
	return categories, err
}

// GetAll returns every category, active or not.
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Select(&categories, `
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY display_order, name
	`)
	return categories, err
}

// GetByID returns a single category by id.
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	var c models.Category
	err := r.db.Get(&c, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsByName reports whether any category (active or not) has the given
// name, compared case-insensitively.
func (r *CategoryRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1))
	`, name)
	return exists, err
}

// MaxDisplayOrder returns the highest display order across all categories,
// or 0 when none exist.
func (r *CategoryRepository) MaxDisplayOrder() (int, error) {
	var max sql.NullInt64
	if err := r.db.Get(&max, `SELECT MAX(display_order) FROM categories`); err != nil {
		return 0, err
	}
	return int(max.Int64), nil
}

// Create inserts a new category.
func (r *CategoryRepository) Create(c *models.Category) error {
	query := `
		INSERT INTO categories
			(name, description, icon, display_order, show_on_home,
			 is_special_slot, slot_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(query,
		c.Name, c.Description, c.Icon, c.DisplayOrder, c.ShowOnHome,
		c.IsSpecialSlot, c.SlotType, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update writes all mutable category fields.
func (r *CategoryRepository) Update(c *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, icon = $4, display_order = $5,
		    show_on_home = $6, is_special_slot = $7, slot_type = $8,
		    is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.db.QueryRow(query,
		c.ID, c.Name, c.Description, c.Icon, c.DisplayOrder,
		c.ShowOnHome, c.IsSpecialSlot, c.SlotType, c.IsActive,
	).Scan(&c.UpdatedAt)
}

// UpdateDisplayOrder sets a single category's display order.
func (r *CategoryRepository) UpdateDisplayOrder(id, displayOrder int) error {
	res, err := r.db.Exec(`
		UPDATE categories SET display_order = $2, updated_at = NOW() WHERE id = $1
	`, id, displayOrder)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete deactivates a category without touching its display order or
// the products that reference it by name.
func (r *CategoryRepository) SoftDelete(id int) error {
	res, err := r.db.Exec(`
		UPDATE categories SET is_active = false, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
