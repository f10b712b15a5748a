package models

import "time"

// SlotType determines which products a home-page section resolves to.
type SlotType string

const (
	// SlotCategory is a plain section: products whose category equals the
	// section name.
	SlotCategory SlotType = "category"
	// SlotBestSeller is a special slot: best-seller products across all
	// categories.
	SlotBestSeller SlotType = "bestseller"
	// SlotPalmOilFree is a special slot: palm-oil-free products across all
	// categories.
	SlotPalmOilFree SlotType = "palmOilFree"
)

// Valid reports whether s is one of the recognized slot types.
func (s SlotType) Valid() bool {
	switch s {
	case SlotCategory, SlotBestSeller, SlotPalmOilFree:
		return true
	}
	return false
}

// Category is a named home-page section. DisplayOrder controls home-page
// sequence; it is a sort key, not a dense index.
type Category struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Icon          string    `db:"icon" json:"icon"`
	DisplayOrder  int       `db:"display_order" json:"displayOrder"`
	ShowOnHome    bool      `db:"show_on_home" json:"showOnHome"`
	IsSpecialSlot bool      `db:"is_special_slot" json:"isSpecialSlot"`
	SlotType      SlotType  `db:"slot_type" json:"slotType"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// HomeSection is a category joined with its resolved products for the
// home-page payload.
type HomeSection struct {
	Category
	Products []Product `json:"products"`
}
