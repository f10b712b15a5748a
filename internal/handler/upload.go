package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Upload limits.
const (
	maxImageSize     = 5 << 20  // 5MB per image
	maxCatalogueSize = 50 << 20 // 50MB for the catalogue PDF
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Uploader stores multipart uploads under a local root directory and serves
// them back via the /uploads static route.
type Uploader struct {
	root string
}

// NewUploader creates an Uploader rooted at dir, creating it if needed.
func NewUploader(dir string) (*Uploader, error) {
	for _, sub := range []string{"products", "blogs", "catalogue"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &Uploader{root: dir}, nil
}

// SaveImage validates and stores one image upload under root/subdir and
// returns its public path ("/uploads/<subdir>/<name>").
func (u *Uploader) SaveImage(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image %q exceeds the 5MB limit", file.Filename)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(u.root, subdir, name)); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return "/uploads/" + subdir + "/" + name, nil
}

// SaveCatalogue validates and stores the catalogue PDF and returns its
// public path.
func (u *Uploader) SaveCatalogue(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxCatalogueSize {
		return "", fmt.Errorf("file too large, maximum size is 50MB")
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", fmt.Errorf("only PDF files are allowed")
	}

	name := "catalogue-" + uuid.New().String() + ".pdf"
	if err := c.SaveUploadedFile(file, filepath.Join(u.root, "catalogue", name)); err != nil {
		return "", fmt.Errorf("failed to store catalogue: %w", err)
	}
	return "/uploads/catalogue/" + name, nil
}

// Remove deletes a stored upload by its public path. Paths outside /uploads
// are ignored.
func (u *Uploader) Remove(publicPath string) {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok || strings.Contains(rel, "..") {
		return
	}
	if err := os.Remove(filepath.Join(u.root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", publicPath).Msg("failed to remove upload")
	}
}

// DiskPath resolves a public upload path to its on-disk location.
func (u *Uploader) DiskPath(publicPath string) (string, bool) {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok || strings.Contains(rel, "..") {
		return "", false
	}
	return filepath.Join(u.root, filepath.FromSlash(rel)), true
}

// Root returns the upload root directory, for static file serving.
func (u *Uploader) Root() string {
	return u.root
}
