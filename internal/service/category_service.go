package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// homeSectionLimit caps the products resolved per home-page section.
const homeSectionLimit = 10

// CategoryStore is the persistence surface the category service needs.
type CategoryStore interface {
	GetActive() ([]models.Category, error)
	GetHome() ([]models.Category, error)
	GetAll() ([]models.Category, error)
	GetByID(id int) (*models.Category, error)
	ExistsByName(name string) (bool, error)
	MaxDisplayOrder() (int, error)
	Create(c *models.Category) error
	Update(c *models.Category) error
	UpdateDisplayOrder(id, displayOrder int) error
	SoftDelete(id int) error
}

// HomeProductStore resolves the product set of a home-page section.
type HomeProductStore interface {
	ByCategoryName(name string, limit int) ([]models.Product, error)
	BestSellers(limit int) ([]models.Product, error)
	PalmOilFree(limit int) ([]models.Product, error)
}

// HomeSectionCache caches the composed home-page payload. May be nil.
type HomeSectionCache interface {
	Get(ctx context.Context) ([]models.HomeSection, error)
	Set(ctx context.Context, sections []models.HomeSection) error
	Invalidate(ctx context.Context) error
}

// CreateCategoryRequest is the payload for category creation.
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=50"`
	Description  string `json:"description" binding:"max=200"`
	Icon         string `json:"icon"`
	DisplayOrder *int   `json:"displayOrder"`
	ShowOnHome   *bool  `json:"showOnHome"`
}

// UpdateCategoryRequest is a partial update; only non-nil fields change.
// Supplying SlotType applies the special-slot toggle.
type UpdateCategoryRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Icon         *string          `json:"icon"`
	DisplayOrder *int             `json:"displayOrder"`
	ShowOnHome   *bool            `json:"showOnHome"`
	IsActive     *bool            `json:"isActive"`
	SlotType     *models.SlotType `json:"slotType"`
}

// ReorderItem pairs a category id with its new display order.
type ReorderItem struct {
	ID           int `json:"id" binding:"required"`
	DisplayOrder int `json:"displayOrder"`
}

// CategoryService maintains the ordered, named set of home-page sections and
// composes the home-page payload.
type CategoryService struct {
	categoryRepo CategoryStore
	productRepo  HomeProductStore
	homeCache    HomeSectionCache
}

// NewCategoryService constructs a CategoryService. homeCache may be nil to
// disable caching.
func NewCategoryService(categoryRepo CategoryStore, productRepo HomeProductStore, homeCache HomeSectionCache) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo, homeCache: homeCache}
}

// GetActive returns active categories in display order.
func (s *CategoryService) GetActive() ([]models.Category, error) {
	return s.categoryRepo.GetActive()
}

// GetAll returns every category, for the admin dashboard.
func (s *CategoryService) GetAll() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// Create adds a new category. Name collisions are checked case-insensitively
// against all categories, active or not. Display order defaults to one past
// the current maximum.
func (s *CategoryService) Create(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)

	exists, err := s.categoryRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.ErrDuplicateCategory
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		max, err := s.categoryRepo.MaxDisplayOrder()
		if err != nil {
			return nil, err
		}
		displayOrder = max + 1
	}

	category := &models.Category{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Icon:         req.Icon,
		DisplayOrder: displayOrder,
		ShowOnHome:   req.ShowOnHome == nil || *req.ShowOnHome,
		SlotType:     models.SlotCategory,
		IsActive:     true,
	}
	if category.Icon == "" {
		category.Icon = "📦"
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.invalidateHome(ctx)
	return category, nil
}

// Update applies a partial update. Renames are not re-checked for name
// collisions. A SlotType in the request runs the special-slot toggle.
func (s *CategoryService) Update(ctx context.Context, id int, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.ShowOnHome != nil {
		category.ShowOnHome = *req.ShowOnHome
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.SlotType != nil {
		if err := applySlotToggle(category, *req.SlotType); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.invalidateHome(ctx)
	return category, nil
}

// applySlotToggle flips a category's special-slot binding: toggling the slot
// type it already has clears it back to a plain category; any other
// recognized special type takes over the slot.
func applySlotToggle(category *models.Category, slotType models.SlotType) error {
	switch slotType {
	case models.SlotBestSeller, models.SlotPalmOilFree:
		if category.IsSpecialSlot && category.SlotType == slotType {
			category.IsSpecialSlot = false
			category.SlotType = models.SlotCategory
		} else {
			category.IsSpecialSlot = true
			category.SlotType = slotType
		}
		return nil
	case models.SlotCategory:
		category.IsSpecialSlot = false
		category.SlotType = models.SlotCategory
		return nil
	}
	return utils.ErrInvalidSlotType
}

// Reorder applies the given display orders sequentially, best effort: an
// error mid-sequence leaves earlier updates in place.
func (s *CategoryService) Reorder(ctx context.Context, items []ReorderItem) error {
	for _, item := range items {
		if err := s.categoryRepo.UpdateDisplayOrder(item.ID, item.DisplayOrder); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.ErrCategoryNotFound
			}
			return err
		}
	}
	s.invalidateHome(ctx)
	return nil
}

// Delete soft-deletes a category. Products keep their category strings.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if err := s.categoryRepo.SoftDelete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	s.invalidateHome(ctx)
	return nil
}

// Home composes the ordered home-page payload: each active, show-on-home
// category with its resolved products. Sections with no products are
// included; a special slot with an unrecognized type resolves to an empty
// list rather than failing the page.
func (s *CategoryService) Home(ctx context.Context) ([]models.HomeSection, error) {
	if s.homeCache != nil {
		if sections, err := s.homeCache.Get(ctx); err == nil && sections != nil {
			return sections, nil
		}
	}

	categories, err := s.categoryRepo.GetHome()
	if err != nil {
		return nil, err
	}

	sections := make([]models.HomeSection, 0, len(categories))
	for _, category := range categories {
		products, err := s.resolveProducts(&category)
		if err != nil {
			return nil, err
		}
		if products == nil {
			products = []models.Product{}
		}
		sections = append(sections, models.HomeSection{Category: category, Products: products})
	}

	if s.homeCache != nil {
		if err := s.homeCache.Set(ctx, sections); err != nil {
			log.Warn().Err(err).Msg("failed to cache home sections")
		}
	}
	return sections, nil
}

// resolveProducts maps a section to its product set.
func (s *CategoryService) resolveProducts(category *models.Category) ([]models.Product, error) {
	if !category.IsSpecialSlot {
		return s.productRepo.ByCategoryName(category.Name, homeSectionLimit)
	}
	switch category.SlotType {
	case models.SlotBestSeller:
		return s.productRepo.BestSellers(homeSectionLimit)
	case models.SlotPalmOilFree:
		return s.productRepo.PalmOilFree(homeSectionLimit)
	case models.SlotCategory:
		// A special slot should never carry the plain type; render empty
		// rather than guessing.
		return nil, nil
	default:
		return nil, nil
	}
}

// InvalidateHome drops the cached home payload. Product mutations call this
// through their own service.
func (s *CategoryService) InvalidateHome(ctx context.Context) {
	s.invalidateHome(ctx)
}

func (s *CategoryService) invalidateHome(ctx context.Context) {
	if s.homeCache == nil {
		return
	}
	if err := s.homeCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate home cache")
	}
}
