package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// maxProductImages caps how many images a product can carry.
const maxProductImages = 5

// ProductStore is the persistence surface the product service needs.
type ProductStore interface {
	ListActive(category, search string, page, limit int) ([]models.Product, int, error)
	ListAll(page, limit int) ([]models.Product, int, error)
	GetByID(id int) (*models.Product, error)
	DistinctCategories() ([]string, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	SoftDelete(id int) error
}

// CreateProductRequest is the payload for product creation. Images are the
// stored paths of already-saved uploads.
type CreateProductRequest struct {
	Name          string
	Description   string
	Category      string
	Weight        string
	Price         float64
	Stock         *int
	IsActive      *bool
	IsBestSeller  bool
	IsPalmOilFree bool
	Images        []string
}

// UpdateProductRequest is a partial update; only non-nil fields change.
// Images, when non-nil, replaces the full image list (kept + newly uploaded).
type UpdateProductRequest struct {
	Name          *string
	Description   *string
	Category      *string
	Weight        *string
	Price         *float64
	Stock         *int
	IsActive      *bool
	IsBestSeller  *bool
	IsPalmOilFree *bool
	Images        []string
}

// ProductListResult is a page of products with pagination totals.
type ProductListResult struct {
	Products []models.Product
	Page     int
	Limit    int
	Total    int
}

// ProductService implements product CRUD for the storefront and admin
// dashboard.
type ProductService struct {
	productRepo ProductStore
	homeCache   HomeSectionCache
}

// NewProductService constructs a ProductService. homeCache may be nil.
func NewProductService(productRepo ProductStore, homeCache HomeSectionCache) *ProductService {
	return &ProductService{productRepo: productRepo, homeCache: homeCache}
}

// ListPublic returns active products for the storefront.
func (s *ProductService) ListPublic(category, search string, page, limit int) (*ProductListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 12
	}
	products, total, err := s.productRepo.ListActive(category, search, page, limit)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products, Page: page, Limit: limit, Total: total}, nil
}

// ListAll returns every product for the admin dashboard.
func (s *ProductService) ListAll(page, limit int) (*ProductListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	products, total, err := s.productRepo.ListAll(page, limit)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products, Page: page, Limit: limit, Total: total}, nil
}

// Categories returns the distinct category strings of active products.
func (s *ProductService) Categories() ([]string, error) {
	return s.productRepo.DistinctCategories()
}

// GetByID returns a single product.
func (s *ProductService) GetByID(id int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create adds a new product. The first image becomes the main image; without
// uploads the default placeholder is used.
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	images := req.Images
	if len(images) > maxProductImages {
		images = images[:maxProductImages]
	}

	product := &models.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Category:      strings.TrimSpace(req.Category),
		Price:         req.Price,
		Weight:        req.Weight,
		Image:         models.DefaultProductImage,
		Images:        images,
		Stock:         100,
		IsActive:      req.IsActive == nil || *req.IsActive,
		IsBestSeller:  req.IsBestSeller,
		IsPalmOilFree: req.IsPalmOilFree,
	}
	if product.Weight == "" {
		product.Weight = "200g"
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if len(images) > 0 {
		product.Image = images[0]
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateHome(ctx)
	return product, nil
}

// Update applies a partial update and returns the updated product along with
// the image paths that were replaced (for the caller to remove from disk).
func (s *ProductService) Update(ctx context.Context, id int, req *UpdateProductRequest) (*models.Product, []string, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, utils.ErrProductNotFound
		}
		return nil, nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsBestSeller != nil {
		product.IsBestSeller = *req.IsBestSeller
	}
	if req.IsPalmOilFree != nil {
		product.IsPalmOilFree = *req.IsPalmOilFree
	}

	var removed []string
	if req.Images != nil {
		images := req.Images
		if len(images) > maxProductImages {
			images = images[:maxProductImages]
		}
		removed = diffImages(product.Images, images)
		product.Images = images
		if len(images) > 0 {
			product.Image = images[0]
		} else {
			product.Image = models.DefaultProductImage
		}
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, nil, err
	}
	s.invalidateHome(ctx)
	return product, removed, nil
}

// Delete soft-deletes a product.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.productRepo.SoftDelete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	s.invalidateHome(ctx)
	return nil
}

// diffImages returns the paths in old that are absent from kept.
func diffImages(old, kept []string) []string {
	keep := make(map[string]bool, len(kept))
	for _, img := range kept {
		keep[img] = true
	}
	var removed []string
	for _, img := range old {
		if !keep[img] {
			removed = append(removed, img)
		}
	}
	return removed
}

func (s *ProductService) invalidateHome(ctx context.Context) {
	if s.homeCache == nil {
		return
	}
	_ = s.homeCache.Invalidate(ctx)
}
