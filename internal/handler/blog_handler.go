package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// BlogHandler handles blog HTTP endpoints.
type BlogHandler struct {
	blogService *service.BlogService
	uploader    *Uploader
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(blogService *service.BlogService, uploader *Uploader) *BlogHandler {
	return &BlogHandler{blogService: blogService, uploader: uploader}
}

// List handles GET /api/blogs (public).
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogService.ListPublic()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch blogs")
		return
	}
	utils.Success(c, 200, "Blogs retrieved", blogs)
}

// ListAll handles GET /api/admin/blogs (includes inactive).
func (h *BlogHandler) ListAll(c *gin.Context) {
	blogs, err := h.blogService.ListAll()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch blogs")
		return
	}
	utils.Success(c, 200, "Blogs retrieved", blogs)
}

// Get handles GET /api/blogs/:id (public).
func (h *BlogHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid blog ID")
		return
	}

	blog, err := h.blogService.GetByID(id)
	if err != nil {
		if errors.Is(err, utils.ErrBlogNotFound) {
			utils.Error(c, 404, "BLOG_NOT_FOUND", "Blog not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch blog")
		return
	}
	utils.Success(c, 200, "Blog retrieved", blog)
}

// Create handles POST /api/admin/blogs (multipart with optional image).
func (h *BlogHandler) Create(c *gin.Context) {
	req := &service.CreateBlogRequest{
		Title:    c.PostForm("title"),
		Excerpt:  c.PostForm("excerpt"),
		Content:  c.PostForm("content"),
		Author:   c.PostForm("author"),
		Category: c.PostForm("category"),
		ReadTime: c.PostForm("readTime"),
	}
	if req.Title == "" || req.Excerpt == "" || req.Content == "" {
		utils.Error(c, 400, "INVALID_REQUEST", "Title, excerpt, and content are required")
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := h.uploader.SaveImage(c, file, "blogs")
		if err != nil {
			utils.Error(c, 400, "INVALID_UPLOAD", err.Error())
			return
		}
		req.Image = path
	}

	blog, err := h.blogService.Create(req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create blog")
		return
	}
	utils.Success(c, 201, "Blog created successfully", blog)
}

// Update handles PUT /api/admin/blogs/:id (multipart).
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid blog ID")
		return
	}

	req := &service.UpdateBlogRequest{}
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("excerpt"); ok {
		req.Excerpt = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		req.Content = &v
	}
	if v, ok := c.GetPostForm("author"); ok {
		req.Author = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		req.Category = &v
	}
	if v, ok := c.GetPostForm("readTime"); ok {
		req.ReadTime = &v
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		active := v != "false"
		req.IsActive = &active
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := h.uploader.SaveImage(c, file, "blogs")
		if err != nil {
			utils.Error(c, 400, "INVALID_UPLOAD", err.Error())
			return
		}
		req.Image = &path
	}

	blog, err := h.blogService.Update(id, req)
	if err != nil {
		if errors.Is(err, utils.ErrBlogNotFound) {
			utils.Error(c, 404, "BLOG_NOT_FOUND", "Blog not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update blog")
		return
	}
	utils.Success(c, 200, "Blog updated successfully", blog)
}

// Delete handles DELETE /api/admin/blogs/:id (hard delete).
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid blog ID")
		return
	}

	if err := h.blogService.Delete(id); err != nil {
		if errors.Is(err, utils.ErrBlogNotFound) {
			utils.Error(c, 404, "BLOG_NOT_FOUND", "Blog not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete blog")
		return
	}
	utils.Success(c, 200, "Blog deleted successfully", nil)
}
