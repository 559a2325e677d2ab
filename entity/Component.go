package entity

import (
	"gorm.io/gorm"
)

// Component categories as stored in the components table.
const (
	CategoryProcessor   = "processor"
	CategoryMotherboard = "motherboard"
	CategoryMemory      = "memory"
	CategoryCooling     = "cooling"
	CategoryVideoCard   = "video_card"
	CategoryPowerSupply = "power_supply"
	CategoryStorage     = "storage"
	CategoryCase        = "case"
)

type Component struct {
	gorm.Model
	Category string `gorm:"not null;index" json:"category"`
	Name     string `gorm:"not null" json:"name"`
	Price    int64  `gorm:"not null" json:"price"`
	Socket   string `json:"socket,omitempty"`
	Brand    string `json:"brand,omitempty"`

	Builds []Build `gorm:"many2many:build_components;" json:"-"`
}
