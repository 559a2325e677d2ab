package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/misha4322/ps-server/entity"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// CartLineView is a cart line joined with its build's catalog data.
type CartLineView struct {
	ID         uint   `json:"id"`
	BuildID    uint   `json:"build_id"`
	Quantity   int    `json:"quantity"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	TotalPrice int64  `json:"total_price"`
}

// GetLines returns the user's cart enriched with build name/image/price.
// An empty cart is an empty slice, not an error.
func (r *CartRepository) GetLines(userID uint) ([]CartLineView, error) {
	out := make([]CartLineView, 0)
	err := r.DB.Table("cart_items AS c").
		Select("c.id, c.build_id, c.quantity, b.name, b.image_url, b.total_price").
		Joins("JOIN builds b ON b.id = c.build_id").
		Where("c.user_id = ?", userID).
		Order("c.id").
		Scan(&out).Error
	return out, err
}

func (r *CartRepository) GetLineByID(userID, lineID uint) (*CartLineView, error) {
	var v CartLineView
	res := r.DB.Table("cart_items AS c").
		Select("c.id, c.build_id, c.quantity, b.name, b.image_url, b.total_price").
		Joins("JOIN builds b ON b.id = c.build_id").
		Where("c.id = ? AND c.user_id = ?", lineID, userID).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r *CartRepository) GetLineByBuild(userID, buildID uint) (*CartLineView, error) {
	var v CartLineView
	res := r.DB.Table("cart_items AS c").
		Select("c.id, c.build_id, c.quantity, b.name, b.image_url, b.total_price").
		Joins("JOIN builds b ON b.id = c.build_id").
		Where("c.user_id = ? AND c.build_id = ?", userID, buildID).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r *CartRepository) DeleteAll(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) Insert(tx *gorm.DB, line *entity.CartItem) error {
	return tx.Create(line).Error
}

// Upsert merges additively on the (user_id, build_id) key: a duplicate add
// increments the existing quantity instead of creating a second line.
func (r *CartRepository) Upsert(tx *gorm.DB, line *entity.CartItem) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "build_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(line).Error
}

// UpdateQuantity sets the quantity directly; ownership is part of the WHERE.
// Returns the number of rows touched so callers can tell a missing line.
func (r *CartRepository) UpdateQuantity(tx *gorm.DB, userID, lineID uint, quantity int) (int64, error) {
	res := tx.Model(&entity.CartItem{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

// Remove deletes one line. Deleting a line that is already gone is fine.
func (r *CartRepository) Remove(tx *gorm.DB, userID, lineID uint) error {
	return tx.Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&entity.CartItem{}).Error
}
