package repository

import (
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
)

type BuildRepository struct{ DB *gorm.DB }

func NewBuildRepository(db *gorm.DB) *BuildRepository { return &BuildRepository{DB: db} }

func (r *BuildRepository) ListWithComponents(predefinedOnly bool) ([]entity.Build, error) {
	var out []entity.Build
	q := r.DB.Preload("Components")
	if predefinedOnly {
		q = q.Where("is_predefined = ?", true)
	}
	err := q.Order("id").Find(&out).Error
	return out, err
}

func (r *BuildRepository) GetByID(id uint) (*entity.Build, error) {
	var b entity.Build
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuildRepository) GetWithComponents(id uint) (*entity.Build, error) {
	var b entity.Build
	if err := r.DB.Preload("Components").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuildRepository) GetComponents(buildID uint) ([]entity.Component, error) {
	var out []entity.Component
	err := r.DB.Table("components AS c").
		Select("c.*").
		Joins("JOIN build_components bc ON bc.component_id = c.id").
		Where("bc.build_id = ?", buildID).
		Scan(&out).Error
	return out, err
}

// CountByIDs reports how many of the given build ids exist. Services use it
// to reject references to unknown builds before opening a transaction.
func (r *BuildRepository) CountByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&entity.Build{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *BuildRepository) Create(tx *gorm.DB, b *entity.Build) error {
	return tx.Create(b).Error
}

func (r *BuildRepository) AddComponents(tx *gorm.DB, buildID uint, componentIDs []uint) error {
	for _, cid := range componentIDs {
		join := entity.BuildComponent{BuildID: buildID, ComponentID: cid}
		if err := tx.Create(&join).Error; err != nil {
			return err
		}
	}
	return nil
}
