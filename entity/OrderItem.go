package entity

import (
	"gorm.io/gorm"
)

// OrderItem captures quantity and unit price at order time. UnitPrice is a
// snapshot — later catalog price changes never touch placed orders.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `json:"-"`

	BuildID uint  `gorm:"not null" json:"build_id"`
	Build   Build `json:"-"`

	Quantity  int   `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice int64 `gorm:"not null" json:"unit_price"`
}
