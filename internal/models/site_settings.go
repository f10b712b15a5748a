package models

import "time"

// SiteSettings is a singleton row holding site-wide settings, currently the
// downloadable catalogue PDF.
type SiteSettings struct {
	ID                  int        `db:"id" json:"id"`
	CataloguePDF        *string    `db:"catalogue_pdf" json:"cataloguePdf,omitempty"`
	CatalogueFileName   *string    `db:"catalogue_file_name" json:"catalogueFileName,omitempty"`
	CatalogueUploadedAt *time.Time `db:"catalogue_uploaded_at" json:"catalogueUploadedAt,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updatedAt"`
}
