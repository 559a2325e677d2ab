package entity

import (
	"gorm.io/gorm"
)

// Build is a named bundle of components, predefined or user-assembled.
// TotalPrice is display data set at creation; it is never recomputed from
// the component rows.
type Build struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	ImageURL     string `gorm:"not null;default:default_build.jpg" json:"image_url"`
	TotalPrice   int64  `gorm:"not null" json:"total_price"`
	IsPredefined bool   `gorm:"default:false" json:"is_predefined"`

	Components []Component `gorm:"many2many:build_components;" json:"components,omitempty"`

	OrderItems []OrderItem `json:"-"`
	CartItems  []CartItem  `json:"-"`
}
