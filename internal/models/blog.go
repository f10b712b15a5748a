package models

import "time"

// Blog post categories.
var BlogCategories = []string{"Recipes", "Culture", "Health", "News", "Other"}

// Blog is a site blog post.
type Blog struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Excerpt   string    `db:"excerpt" json:"excerpt"`
	Content   string    `db:"content" json:"content"`
	Author    string    `db:"author" json:"author"`
	Category  string    `db:"category" json:"category"`
	Image     string    `db:"image" json:"image"`
	ReadTime  string    `db:"read_time" json:"readTime"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ValidBlogCategory reports whether c is one of the allowed blog categories.
func ValidBlogCategory(c string) bool {
	for _, v := range BlogCategories {
		if v == c {
			return true
		}
	}
	return false
}
