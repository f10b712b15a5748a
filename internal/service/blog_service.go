package service

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// BlogStore is the persistence surface the blog service needs.
type BlogStore interface {
	ListActive() ([]models.Blog, error)
	ListAll() ([]models.Blog, error)
	GetByID(id int) (*models.Blog, error)
	Create(b *models.Blog) error
	Update(b *models.Blog) error
	Delete(id int) error
}

// CreateBlogRequest is the payload for blog creation. Image is the stored
// path of an already-saved upload, if any.
type CreateBlogRequest struct {
	Title    string
	Excerpt  string
	Content  string
	Author   string
	Category string
	Image    string
	ReadTime string
}

// UpdateBlogRequest is a partial update; only non-nil fields change.
type UpdateBlogRequest struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Author   *string
	Category *string
	Image    *string
	ReadTime *string
	IsActive *bool
}

// BlogService implements blog post CRUD.
type BlogService struct {
	blogRepo BlogStore
}

// NewBlogService constructs a BlogService.
func NewBlogService(blogRepo BlogStore) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

// ListPublic returns active posts newest first.
func (s *BlogService) ListPublic() ([]models.Blog, error) {
	return s.blogRepo.ListActive()
}

// ListAll returns all posts for the admin dashboard.
func (s *BlogService) ListAll() ([]models.Blog, error) {
	return s.blogRepo.ListAll()
}

// GetByID returns a single post.
func (s *BlogService) GetByID(id int) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}

// Create adds a new post, filling the original defaults for omitted fields.
func (s *BlogService) Create(req *CreateBlogRequest) (*models.Blog, error) {
	blog := &models.Blog{
		Title:    strings.TrimSpace(req.Title),
		Excerpt:  strings.TrimSpace(req.Excerpt),
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Image:    req.Image,
		ReadTime: req.ReadTime,
		IsActive: true,
	}
	if blog.Author == "" {
		blog.Author = "Admin"
	}
	if blog.Category == "" || !models.ValidBlogCategory(blog.Category) {
		blog.Category = "Other"
	}
	if blog.Image == "" {
		blog.Image = "no-photo.jpg"
	}
	if blog.ReadTime == "" {
		blog.ReadTime = "5 min read"
	}

	if err := s.blogRepo.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Update applies a partial update.
func (s *BlogService) Update(id int, req *UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrBlogNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		blog.Title = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		blog.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.Category != nil && models.ValidBlogCategory(*req.Category) {
		blog.Category = *req.Category
	}
	if req.Image != nil {
		blog.Image = *req.Image
	}
	if req.ReadTime != nil {
		blog.ReadTime = *req.ReadTime
	}
	if req.IsActive != nil {
		blog.IsActive = *req.IsActive
	}

	if err := s.blogRepo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a post permanently. Blog deletion is a hard delete, unlike
// products and categories.
func (s *BlogService) Delete(id int) error {
	if err := s.blogRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrBlogNotFound
		}
		return err
	}
	return nil
}
