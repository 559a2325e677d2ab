package entity

import (
	"time"
)

// Favorite bookmarks a build for a user. Hard-deleted, same reasoning as
// CartItem: re-adding after removal must not trip the unique index.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`

	UserID uint `gorm:"not null;uniqueIndex:idx_favorite_user_build" json:"user_id"`

	BuildID uint  `gorm:"not null;uniqueIndex:idx_favorite_user_build" json:"build_id"`
	Build   Build `json:"-"`
}
