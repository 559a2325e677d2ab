package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/repository"
)

// txTimeout bounds every multi-statement transaction. A timeout aborts and
// rolls back like any other transaction failure.
const txTimeout = 5 * time.Second

type CartService struct {
	DB        *gorm.DB
	CartRepo  *repository.CartRepository
	BuildRepo *repository.BuildRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, br *repository.BuildRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, BuildRepo: br}
}

type CartItemIn struct {
	BuildID  uint `json:"build_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

func (s *CartService) Get(userID uint) ([]repository.CartLineView, error) {
	return s.CartRepo.GetLines(userID)
}

// Sync replaces the whole cart with the supplied set in one transaction:
// delete everything, insert the new lines verbatim. Not a merge — the
// client snapshot wins. Concurrent syncs for the same user race and the
// last commit wins; each one is still all-or-nothing.
func (s *CartService) Sync(userID uint, items []CartItemIn) ([]repository.CartLineView, error) {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1")
		}
		if seen[it.BuildID] {
			return nil, apperr.Conflict("duplicate build in items")
		}
		seen[it.BuildID] = true
		ids = append(ids, it.BuildID)
	}
	if err := s.ensureBuildsExist(ids); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.DeleteAll(tx, userID); err != nil {
			return err
		}
		for _, it := range items {
			line := entity.CartItem{UserID: userID, BuildID: it.BuildID, Quantity: it.Quantity}
			if err := s.CartRepo.Insert(tx, &line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"items":   len(items),
			"error":   err.Error(),
		}).Error("cart sync failed")
		return nil, apperr.Internal(err)
	}

	return s.CartRepo.GetLines(userID)
}

// Add merges additively: adding a build already in the cart increments its
// quantity instead of creating a second line. Omitted quantity means 1.
func (s *CartService) Add(userID, buildID uint, quantity int) (*repository.CartLineView, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, apperr.Validation("quantity must be at least 1")
	}
	if err := s.ensureBuildsExist([]uint{buildID}); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line := entity.CartItem{UserID: userID, BuildID: buildID, Quantity: quantity}
		return s.CartRepo.Upsert(tx, &line)
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"build_id": buildID,
			"error":    err.Error(),
		}).Error("cart add failed")
		return nil, apperr.Internal(err)
	}

	return s.CartRepo.GetLineByBuild(userID, buildID)
}

// UpdateQuantity sets the quantity directly, no merge.
func (s *CartService) UpdateQuantity(userID, lineID uint, quantity int) (*repository.CartLineView, error) {
	if quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	var affected int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.CartRepo.UpdateQuantity(tx, userID, lineID, quantity)
		affected = n
		return err
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("cart line not found")
	}

	return s.CartRepo.GetLineByID(userID, lineID)
}

// Remove deletes one line. Removing a line that does not exist succeeds.
func (s *CartService) Remove(userID, lineID uint) error {
	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.Remove(tx, userID, lineID)
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *CartService) ensureBuildsExist(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.BuildRepo.CountByIDs(ids)
	if err != nil {
		return apperr.Internal(err)
	}
	if count != int64(len(ids)) {
		return apperr.Referential("build not found")
	}
	return nil
}
