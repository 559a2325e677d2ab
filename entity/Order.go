package entity

import (
	"gorm.io/gorm"
)

// Order statuses. The machine is one-way: created → completed.
const (
	OrderStatusCreated   = "created"
	OrderStatusCompleted = "completed"
)

// Order is immutable once created, except for the status transition.
// Total is computed server-side as the sum of line totals at creation.
type Order struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `json:"-"`

	Phone  string `gorm:"not null" json:"phone"`
	Total  int64  `gorm:"not null" json:"total"`
	Status string `gorm:"not null;default:created" json:"status"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
