package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountDisabled    = errors.New("ACCOUNT_DISABLED")
	ErrDuplicateCategory  = errors.New("DUPLICATE_CATEGORY")
	ErrCategoryNotFound   = errors.New("CATEGORY_NOT_FOUND")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrBlogNotFound       = errors.New("BLOG_NOT_FOUND")
	ErrAdminNotFound      = errors.New("ADMIN_NOT_FOUND")
	ErrNoCatalogue        = errors.New("NO_CATALOGUE")
	ErrInvalidSlotType    = errors.New("INVALID_SLOT_TYPE")
)
