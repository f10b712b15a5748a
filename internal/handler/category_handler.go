package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// CategoryHandler handles category HTTP endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /api/categories (public, active only).
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.GetActive()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

// Home handles GET /api/categories/home (public): ordered sections with
// their resolved products.
func (h *CategoryHandler) Home(c *gin.Context) {
	sections, err := h.categoryService.Home(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch home categories")
		return
	}
	utils.Success(c, 200, "Home categories retrieved", sections)
}

// ListAll handles GET /api/admin/categories (includes inactive).
func (h *CategoryHandler) ListAll(c *gin.Context) {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

// Create handles POST /api/admin/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrDuplicateCategory) {
			utils.Error(c, 400, "DUPLICATE_CATEGORY", "Category with this name already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create category")
		return
	}
	utils.Success(c, 201, "Category created successfully", category)
}

// Reorder handles PUT /api/admin/categories/reorder.
func (h *CategoryHandler) Reorder(c *gin.Context) {
	var req struct {
		Categories []service.ReorderItem `json:"categories" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Categories array is required")
		return
	}

	if err := h.categoryService.Reorder(c.Request.Context(), req.Categories); err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to reorder categories")
		return
	}
	utils.Success(c, 200, "Categories reordered successfully", nil)
}

// Update handles PUT /api/admin/categories/:id. A slotType in the body
// applies the special-slot toggle.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrCategoryNotFound):
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
		case errors.Is(err, utils.ErrInvalidSlotType):
			utils.Error(c, 400, "INVALID_SLOT_TYPE", "Unknown slot type")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update category")
		}
		return
	}
	utils.Success(c, 200, "Category updated successfully", category)
}

// ToggleSlot handles PUT /api/admin/categories/:id/slot: the dedicated
// special-slot toggle, same semantics as sending slotType through Update.
func (h *CategoryHandler) ToggleSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	var req struct {
		SlotType models.SlotType `json:"slotType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "slotType is required")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &service.UpdateCategoryRequest{SlotType: &req.SlotType})
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrCategoryNotFound):
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
		case errors.Is(err, utils.ErrInvalidSlotType):
			utils.Error(c, 400, "INVALID_SLOT_TYPE", "Unknown slot type")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update category slot")
		}
		return
	}
	utils.Success(c, 200, "Category slot updated successfully", category)
}

// Delete handles DELETE /api/admin/categories/:id (soft delete).
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete category")
		return
	}
	utils.Success(c, 200, "Category deleted successfully", nil)
}
