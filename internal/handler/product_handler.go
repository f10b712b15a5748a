package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// ProductHandler handles product HTTP endpoints. Create and update accept
// multipart forms so product images ride along with the fields.
type ProductHandler struct {
	productService *service.ProductService
	uploader       *Uploader
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService, uploader *Uploader) *ProductHandler {
	return &ProductHandler{productService: productService, uploader: uploader}
}

// List handles GET /api/products (public).
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	result, err := h.productService.ListPublic(c.Query("category"), c.Query("search"), page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch products")
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", result.Products,
		result.Page, result.Limit, result.Total)
}

// Categories handles GET /api/products/categories (public): distinct category
// strings of active products.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.productService.Categories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

// ListAll handles GET /api/admin/products (includes inactive).
func (h *ProductHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.productService.ListAll(page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch products")
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", result.Products,
		result.Page, result.Limit, result.Total)
}

// Get handles GET /api/products/:id (public).
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch product")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// Create handles POST /api/admin/products (multipart).
func (h *ProductHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	category := c.PostForm("category")
	if name == "" || description == "" || category == "" {
		utils.Error(c, 400, "INVALID_REQUEST", "Name, description, and category are required")
		return
	}

	images, ok := h.saveFormImages(c)
	if !ok {
		return
	}

	req := &service.CreateProductRequest{
		Name:          name,
		Description:   description,
		Category:      category,
		Weight:        c.PostForm("weight"),
		IsBestSeller:  c.PostForm("isBestSeller") == "true",
		IsPalmOilFree: c.PostForm("isPalmOilFree") == "true",
		Images:        images,
	}
	if v := c.PostForm("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "price must be a number")
			return
		}
		req.Price = price
	}
	if v := c.PostForm("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "stock must be an integer")
			return
		}
		req.Stock = &stock
	}
	if v := c.PostForm("isActive"); v != "" {
		active := v != "false"
		req.IsActive = &active
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}
	utils.Success(c, 201, "Product created successfully", product)
}

// Update handles PUT /api/admin/products/:id (multipart). existingImages is
// a JSON array of stored paths to keep; new uploads are appended, capped at
// five total, and replaced files are removed from disk.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	req := &service.UpdateProductRequest{}
	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		req.Category = &v
	}
	if v, ok := c.GetPostForm("weight"); ok {
		req.Weight = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "price must be a number")
			return
		}
		req.Price = &price
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "stock must be an integer")
			return
		}
		req.Stock = &stock
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		active := v != "false"
		req.IsActive = &active
	}
	if v, ok := c.GetPostForm("isBestSeller"); ok {
		best := v == "true"
		req.IsBestSeller = &best
	}
	if v, ok := c.GetPostForm("isPalmOilFree"); ok {
		palmFree := v == "true"
		req.IsPalmOilFree = &palmFree
	}

	newImages, ok := h.saveFormImages(c)
	if !ok {
		return
	}

	// The image list is replaced only when the form says something about
	// images; otherwise the stored list is untouched.
	existingRaw, hasExisting := c.GetPostForm("existingImages")
	if hasExisting || len(newImages) > 0 {
		var kept []string
		if existingRaw != "" {
			if err := json.Unmarshal([]byte(existingRaw), &kept); err != nil {
				kept = []string{existingRaw}
			}
		}
		req.Images = append(kept, newImages...)
		if req.Images == nil {
			req.Images = []string{}
		}
	}

	product, removed, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		return
	}
	for _, path := range removed {
		h.uploader.Remove(path)
	}
	utils.Success(c, 200, "Product updated successfully", product)
}

// Delete handles DELETE /api/admin/products/:id (soft delete).
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted successfully", nil)
}

// saveFormImages stores the "images" multipart files and returns their
// public paths. On a bad upload it writes the 400 itself and returns
// ok=false.
func (h *ProductHandler) saveFormImages(c *gin.Context) (paths []string, ok bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, true
	}
	for _, file := range form.File["images"] {
		path, err := h.uploader.SaveImage(c, file, "products")
		if err != nil {
			utils.Error(c, 400, "INVALID_UPLOAD", err.Error())
			return nil, false
		}
		paths = append(paths, path)
	}
	return paths, true
}
