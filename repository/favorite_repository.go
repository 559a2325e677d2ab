package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/misha4322/ps-server/entity"
)

type FavoriteRepository struct{ DB *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// ListBuilds returns the builds a user has favorited, with composition.
func (r *FavoriteRepository) ListBuilds(userID uint) ([]entity.Build, error) {
	var favs []entity.Favorite
	if err := r.DB.Where("user_id = ?", userID).Order("id").Find(&favs).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.BuildID)
	}
	out := make([]entity.Build, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	err := r.DB.Preload("Components").Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// Add inserts the bookmark, ignoring a duplicate.
func (r *FavoriteRepository) Add(userID, buildID uint) error {
	fav := entity.Favorite{UserID: userID, BuildID: buildID}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "build_id"}},
		DoNothing: true,
	}).Create(&fav).Error
}

// Remove deletes the bookmark; removing a missing one is not an error.
func (r *FavoriteRepository) Remove(userID, buildID uint) error {
	return r.DB.Where("user_id = ? AND build_id = ?", userID, buildID).
		Delete(&entity.Favorite{}).Error
}
