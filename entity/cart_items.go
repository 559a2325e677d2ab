package entity

import (
	"time"
)

// CartItem is one line of a user's cart. A user holds at most one line per
// build; duplicate adds merge into the existing line. Lines are deleted for
// real (no soft delete) — the cart keeps no history, and a tombstone would
// block re-inserting the same (user, build) pair.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	UserID uint `gorm:"not null;uniqueIndex:idx_cart_user_build" json:"user_id"`
	User   User `json:"-"`

	BuildID uint  `gorm:"not null;uniqueIndex:idx_cart_user_build" json:"build_id"`
	Build   Build `json:"-"`

	Quantity int `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
}
