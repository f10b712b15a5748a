package service

import (
	"time"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// SettingsStore is the persistence surface for the site-settings singleton.
type SettingsStore interface {
	Get() (*models.SiteSettings, error)
	UpdateCatalogue(s *models.SiteSettings) error
}

// SettingsService manages site-wide settings, currently the downloadable
// catalogue PDF.
type SettingsService struct {
	settingsRepo SettingsStore
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settingsRepo SettingsStore) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the settings singleton.
func (s *SettingsService) Get() (*models.SiteSettings, error) {
	return s.settingsRepo.Get()
}

// CataloguePath returns the stored catalogue path and download file name, or
// utils.ErrNoCatalogue when none is set.
func (s *SettingsService) CataloguePath() (path, fileName string, err error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return "", "", err
	}
	if settings.CataloguePDF == nil {
		return "", "", utils.ErrNoCatalogue
	}
	fileName = "catalogue.pdf"
	if settings.CatalogueFileName != nil {
		fileName = *settings.CatalogueFileName
	}
	return *settings.CataloguePDF, fileName, nil
}

// SetCatalogue records a newly uploaded catalogue and returns the path of
// the previous file, if any, for the caller to remove from disk.
func (s *SettingsService) SetCatalogue(storedPath, originalName string) (oldPath string, err error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return "", err
	}
	if settings.CataloguePDF != nil {
		oldPath = *settings.CataloguePDF
	}

	now := time.Now()
	settings.CataloguePDF = &storedPath
	settings.CatalogueFileName = &originalName
	settings.CatalogueUploadedAt = &now
	if err := s.settingsRepo.UpdateCatalogue(settings); err != nil {
		return "", err
	}
	return oldPath, nil
}

// ClearCatalogue removes the catalogue reference and returns the previous
// path, if any, for the caller to remove from disk.
func (s *SettingsService) ClearCatalogue() (oldPath string, err error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return "", err
	}
	if settings.CataloguePDF != nil {
		oldPath = *settings.CataloguePDF
	}

	settings.CataloguePDF = nil
	settings.CatalogueFileName = nil
	settings.CatalogueUploadedAt = nil
	if err := s.settingsRepo.UpdateCatalogue(settings); err != nil {
		return "", err
	}
	return oldPath, nil
}
