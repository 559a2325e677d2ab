package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	// Relations — preload only when needed
	CartItems []CartItem `json:"-"`
	Orders    []Order    `json:"-"`
	Favorites []Favorite `json:"-"`
}
