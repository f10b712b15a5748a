package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/brijnamkeen/store_api/internal/models"
)

// BlogRepository handles data access for blog posts.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository creates a new BlogRepository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `
	id, title, excerpt, content, author, category, image, read_time,
	is_active, created_at, updated_at`

// ListActive returns active blog posts newest first.
func (r *BlogRepository) ListActive() ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Select(&blogs, `
		SELECT `+blogColumns+` FROM blogs
		WHERE is_active = true
		ORDER BY created_at DESC
	`)
	return blogs, err
}

// ListAll returns every blog post, active or not, newest first.
func (r *BlogRepository) ListAll() ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Select(&blogs, `
		SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC
	`)
	return blogs, err
}

// GetByID returns a single blog post by id.
func (r *BlogRepository) GetByID(id int) (*models.Blog, error) {
	var b models.Blog
	err := r.db.Get(&b, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new blog post.
func (r *BlogRepository) Create(b *models.Blog) error {
	query := `
		INSERT INTO blogs (title, excerpt, content, author, category, image, read_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(query,
		b.Title, b.Excerpt, b.Content, b.Author, b.Category, b.Image, b.ReadTime, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// Update writes all mutable blog fields.
func (r *BlogRepository) Update(b *models.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, excerpt = $3, content = $4, author = $5, category = $6,
		    image = $7, read_time = $8, is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.db.QueryRow(query,
		b.ID, b.Title, b.Excerpt, b.Content, b.Author, b.Category,
		b.Image, b.ReadTime, b.IsActive,
	).Scan(&b.UpdatedAt)
}

// Delete removes a blog post permanently.
func (r *BlogRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
