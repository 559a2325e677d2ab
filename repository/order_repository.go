package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetByID(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListForUser returns the user's orders newest first.
func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// OrderLineView is an order line joined with its build's display data.
// UnitPrice is the snapshot taken at order time, not the current price.
type OrderLineView struct {
	OrderID   uint   `json:"-"`
	BuildID   uint   `json:"build_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (r *OrderRepository) GetLineViews(orderIDs []uint) ([]OrderLineView, error) {
	out := make([]OrderLineView, 0)
	if len(orderIDs) == 0 {
		return out, nil
	}
	err := r.DB.Table("order_items AS oi").
		Select("oi.order_id, oi.build_id, b.name, b.image_url, oi.quantity, oi.unit_price").
		Joins("JOIN builds b ON b.id = oi.build_id").
		Where("oi.order_id IN ? AND oi.deleted_at IS NULL", orderIDs).
		Order("oi.order_id, oi.id").
		Scan(&out).Error
	return out, err
}

// UpdateStatusFromTo moves an order between statuses with a guard: the row
// is only touched while still in the from state, so the transition is safe
// against concurrent completion.
func (r *OrderRepository) UpdateStatusFromTo(tx *gorm.DB, orderID uint, from, to string) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AdminOrderRow is one order in the admin listing, joined with the
// customer's email.
type AdminOrderRow struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Phone     string    `json:"phone"`
	Total     int64     `json:"total"`
	Status    string    `json:"status"`
	UserEmail string    `json:"user_email"`
}

func (r *OrderRepository) ListAll() ([]AdminOrderRow, error) {
	out := make([]AdminOrderRow, 0)
	err := r.DB.Table("orders AS o").
		Select("o.id, o.created_at, o.phone, o.total, o.status, u.email AS user_email").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.deleted_at IS NULL").
		Order("o.created_at DESC, o.id DESC").
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) GetAdminRow(orderID uint) (*AdminOrderRow, error) {
	var row AdminOrderRow
	res := r.DB.Table("orders AS o").
		Select("o.id, o.created_at, o.phone, o.total, o.status, u.email AS user_email").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.id = ? AND o.deleted_at IS NULL", orderID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
