package repository

import (
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
)

type ComponentRepository struct{ DB *gorm.DB }

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{DB: db}
}

// ListOrdered returns the whole catalog ordered by category then name, the
// order the storefront groups it in.
func (r *ComponentRepository) ListOrdered() ([]entity.Component, error) {
	var out []entity.Component
	err := r.DB.Order("category, name").Find(&out).Error
	return out, err
}

func (r *ComponentRepository) GetByID(id uint) (*entity.Component, error) {
	var c entity.Component
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountByIDs reports how many of the given ids exist.
func (r *ComponentRepository) CountByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&entity.Component{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
