package handler

import (
	"errors"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// SettingsHandler handles site settings and catalogue PDF endpoints.
type SettingsHandler struct {
	settingsService *service.SettingsService
	uploader        *Uploader
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService, uploader *Uploader) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, uploader: uploader}
}

// Get handles GET /api/settings (public).
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch settings")
		return
	}
	utils.Success(c, 200, "Settings retrieved", gin.H{
		"hasCatalogue":        settings.CataloguePDF != nil,
		"catalogueFileName":   settings.CatalogueFileName,
		"catalogueUploadedAt": settings.CatalogueUploadedAt,
	})
}

// DownloadCatalogue handles GET /api/settings/catalogue/download (public).
func (h *SettingsHandler) DownloadCatalogue(c *gin.Context) {
	publicPath, fileName, err := h.settingsService.CataloguePath()
	if err != nil {
		if errors.Is(err, utils.ErrNoCatalogue) {
			utils.Error(c, 404, "NO_CATALOGUE", "No catalogue available")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to download catalogue")
		return
	}

	diskPath, ok := h.uploader.DiskPath(publicPath)
	if !ok {
		utils.Error(c, 404, "NO_CATALOGUE", "Catalogue file not found")
		return
	}
	if _, err := os.Stat(diskPath); err != nil {
		utils.Error(c, 404, "NO_CATALOGUE", "Catalogue file not found")
		return
	}
	c.FileAttachment(diskPath, fileName)
}

// UploadCatalogue handles POST /api/admin/settings/catalogue. A new upload
// replaces the previous file on disk.
func (h *SettingsHandler) UploadCatalogue(c *gin.Context) {
	file, err := c.FormFile("catalogue")
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "No PDF file uploaded")
		return
	}

	storedPath, err := h.uploader.SaveCatalogue(c, file)
	if err != nil {
		utils.Error(c, 400, "INVALID_UPLOAD", err.Error())
		return
	}

	oldPath, err := h.settingsService.SetCatalogue(storedPath, file.Filename)
	if err != nil {
		h.uploader.Remove(storedPath)
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to upload catalogue")
		return
	}
	if oldPath != "" {
		h.uploader.Remove(oldPath)
	}

	utils.Success(c, 200, "Catalogue uploaded successfully", gin.H{
		"fileName": file.Filename,
	})
}

// DeleteCatalogue handles DELETE /api/admin/settings/catalogue.
func (h *SettingsHandler) DeleteCatalogue(c *gin.Context) {
	oldPath, err := h.settingsService.ClearCatalogue()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete catalogue")
		return
	}
	if oldPath != "" {
		h.uploader.Remove(oldPath)
	}
	utils.Success(c, 200, "Catalogue deleted successfully", nil)
}
