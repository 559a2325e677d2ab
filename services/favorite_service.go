package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/repository"
)

type FavoriteService struct {
	Repo      *repository.FavoriteRepository
	BuildRepo *repository.BuildRepository
}

func NewFavoriteService(fr *repository.FavoriteRepository, br *repository.BuildRepository) *FavoriteService {
	return &FavoriteService{Repo: fr, BuildRepo: br}
}

func (s *FavoriteService) List(userID uint) ([]entity.Build, error) {
	builds, err := s.Repo.ListBuilds(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return builds, nil
}

// Add bookmarks a build; adding one that is already bookmarked succeeds.
// Returns the build with its composition, like the original listing does.
func (s *FavoriteService) Add(userID, buildID uint) (*entity.Build, error) {
	build, err := s.BuildRepo.GetWithComponents(buildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Referential("build not found")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.Repo.Add(userID, buildID); err != nil {
		return nil, apperr.Internal(err)
	}
	return build, nil
}

// Remove is idempotent: removing a missing bookmark succeeds.
func (s *FavoriteService) Remove(userID, buildID uint) error {
	if err := s.Repo.Remove(userID, buildID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
