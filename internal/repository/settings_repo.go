package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/brijnamkeen/store_api/internal/models"
)

// SettingsRepository handles the singleton site-settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `
	id, catalogue_pdf, catalogue_file_name, catalogue_uploaded_at,
	created_at, updated_at`

// Get returns the settings row, creating it when missing.
func (r *SettingsRepository) Get() (*models.SiteSettings, error) {
	var s models.SiteSettings
	err := r.db.Get(&s, `SELECT `+settingsColumns+` FROM site_settings LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		err = r.db.QueryRow(`
			INSERT INTO site_settings DEFAULT VALUES
			RETURNING `+settingsColumns+`
		`).Scan(&s.ID, &s.CataloguePDF, &s.CatalogueFileName, &s.CatalogueUploadedAt,
			&s.CreatedAt, &s.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateCatalogue sets (or clears, with nils) the catalogue PDF fields.
func (r *SettingsRepository) UpdateCatalogue(s *models.SiteSettings) error {
	query := `
		UPDATE site_settings
		SET catalogue_pdf = $2, catalogue_file_name = $3,
		    catalogue_uploaded_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.db.QueryRow(query,
		s.ID, s.CataloguePDF, s.CatalogueFileName, s.CatalogueUploadedAt,
	).Scan(&s.UpdatedAt)
}
