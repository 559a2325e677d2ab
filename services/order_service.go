package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/repository"
	"github.com/misha4322/ps-server/ws"
)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	BuildRepo *repository.BuildRepository
	Feed      *ws.OrderFeed // optional
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, buildRepo *repository.BuildRepository, feed *ws.OrderFeed) *OrderService {
	return &OrderService{DB: db, Repo: repo, BuildRepo: buildRepo, Feed: feed}
}

type OrderItemIn struct {
	BuildID   uint  `json:"build_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
	UnitPrice int64 `json:"unit_price" binding:"required"`
}

type CreateOrderIn struct {
	Phone string        `json:"phone" binding:"required"`
	Items []OrderItemIn `json:"items" binding:"required,min=1"`
}

type OrderOut struct {
	ID        uint                       `json:"id"`
	CreatedAt time.Time                  `json:"created_at"`
	Phone     string                     `json:"phone"`
	Total     int64                      `json:"total"`
	Status    string                     `json:"status"`
	Items     []repository.OrderLineView `json:"items"`
}

// Create places an order: the total is computed server-side from the
// caller-supplied line prices (the point-in-time snapshot — catalog prices
// are deliberately not re-read), then the header and every line go in as
// one transaction. A failed line insert rolls the header back too.
func (s *OrderService) Create(userID uint, in *CreateOrderIn) (*OrderOut, error) {
	if in.Phone == "" {
		return nil, apperr.Validation("phone is required")
	}
	if len(in.Items) == 0 {
		return nil, apperr.Validation("items is required")
	}

	var total int64
	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1")
		}
		if it.UnitPrice < 0 {
			return nil, apperr.Validation("unit_price must not be negative")
		}
		total += int64(it.Quantity) * it.UnitPrice
		ids = append(ids, it.BuildID)
	}
	count, err := s.BuildRepo.CountByIDs(ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count != int64(len(ids)) {
		return nil, apperr.Referential("build not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	var order entity.Order
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = entity.Order{
			UserID: userID,
			Phone:  in.Phone,
			Total:  total,
			Status: entity.OrderStatusCreated,
		}
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		for _, it := range in.Items {
			oi := entity.OrderItem{
				OrderID:   order.ID,
				BuildID:   it.BuildID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			}
			if err := s.Repo.CreateItem(tx, &oi); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"items":   len(in.Items),
			"error":   err.Error(),
		}).Error("order create failed")
		return nil, apperr.Internal(err)
	}

	s.Feed.Publish(ws.OrderEvent{
		Type:    "order_created",
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total,
		Status:  order.Status,
	})

	return s.detail(&order)
}

// ListForUser returns the user's orders newest first, each with its lines.
func (s *OrderService) ListForUser(userID uint) ([]OrderOut, error) {
	orders, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lines, err := s.Repo.GetLineViews(ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byOrder := groupLines(lines)

	out := make([]OrderOut, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderOut{
			ID:        o.ID,
			CreatedAt: o.CreatedAt,
			Phone:     o.Phone,
			Total:     o.Total,
			Status:    o.Status,
			Items:     byOrder[o.ID],
		})
	}
	return out, nil
}

// Complete moves an order to its terminal state. Completing an
// already-completed order succeeds and returns the unchanged record.
func (s *OrderService) Complete(orderID uint) (*OrderOut, error) {
	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	var moved bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, orderID, entity.OrderStatusCreated, entity.OrderStatusCompleted)
		moved = ok
		return err
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	order, err := s.Repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Internal(err)
	}

	if moved {
		s.Feed.Publish(ws.OrderEvent{
			Type:    "order_completed",
			OrderID: order.ID,
			UserID:  order.UserID,
			Total:   order.Total,
			Status:  order.Status,
		})
	}

	return s.detail(order)
}

// AdminOrderOut is an order with customer email, for the admin listing.
type AdminOrderOut struct {
	repository.AdminOrderRow
	Items []repository.OrderLineView `json:"items"`
}

func (s *OrderService) ListAll() ([]AdminOrderOut, error) {
	rows, err := s.Repo.ListAll()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	lines, err := s.Repo.GetLineViews(ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byOrder := groupLines(lines)

	out := make([]AdminOrderOut, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminOrderOut{AdminOrderRow: r, Items: byOrder[r.ID]})
	}
	return out, nil
}

func (s *OrderService) GetForAdmin(orderID uint) (*AdminOrderOut, error) {
	row, err := s.Repo.GetAdminRow(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Internal(err)
	}
	lines, err := s.Repo.GetLineViews([]uint{orderID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AdminOrderOut{AdminOrderRow: *row, Items: lines}, nil
}

func (s *OrderService) detail(o *entity.Order) (*OrderOut, error) {
	lines, err := s.Repo.GetLineViews([]uint{o.ID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &OrderOut{
		ID:        o.ID,
		CreatedAt: o.CreatedAt,
		Phone:     o.Phone,
		Total:     o.Total,
		Status:    o.Status,
		Items:     lines,
	}, nil
}

func groupLines(lines []repository.OrderLineView) map[uint][]repository.OrderLineView {
	byOrder := make(map[uint][]repository.OrderLineView)
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
	}
	return byOrder
}
