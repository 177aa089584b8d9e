package entity

import "time"

// ProductCategory groups product names (T-Shirts, Hoodies, Caps ...).
type ProductCategory struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:128;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

// ProductName is a sellable product within a category. ColorIDs is an
// optional allow-list; empty means every color is valid for the product.
type ProductName struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	Name       string     `json:"name" gorm:"size:128;not null"`
	CategoryID string     `json:"category_id" gorm:"size:32;not null"`
	ColorIDs   StringList `json:"color_ids" gorm:"type:jsonb"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	Category *ProductCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (ProductName) TableName() string {
	return "product_names"
}

// AllowsColor reports whether the product may be ordered in the given color.
func (p *ProductName) AllowsColor(colorID string) bool {
	if len(p.ColorIDs) == 0 {
		return true
	}
	for _, id := range p.ColorIDs {
		if id == colorID {
			return true
		}
	}
	return false
}

// Color is a garment color swatch.
type Color struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:64;not null"`
	HexCode   string    `json:"hex_code" gorm:"size:8"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Color) TableName() string {
	return "colors"
}
