package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/repository"
	"github.com/misha4322/ps-server/utils"
)

const (
	cacheComponentsKey   = "catalog:components"
	cacheBuildsAllKey    = "catalog:builds:all"
	cacheBuildsPredefKey = "catalog:builds:predefined"
	catalogCacheTTL      = 60 * time.Second
)

// CatalogService serves the read-mostly catalog. Listings go through a
// short redis cache; cart and order state never does.
type CatalogService struct {
	DB         *gorm.DB
	Components *repository.ComponentRepository
	Builds     *repository.BuildRepository
	Cache      *redis.Client // nil disables caching
}

func NewCatalogService(db *gorm.DB, cr *repository.ComponentRepository, br *repository.BuildRepository, cache *redis.Client) *CatalogService {
	return &CatalogService{DB: db, Components: cr, Builds: br, Cache: cache}
}

// ComponentsGrouped returns the catalog keyed by category.
func (s *CatalogService) ComponentsGrouped() (map[string][]entity.Component, error) {
	ctx := context.Background()

	if s.Cache != nil {
		var cached map[string][]entity.Component
		if found, err := utils.GetCache(ctx, s.Cache, cacheComponentsKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	components, err := s.Components.ListOrdered()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	grouped := make(map[string][]entity.Component)
	for _, c := range components {
		grouped[c.Category] = append(grouped[c.Category], c)
	}

	if s.Cache != nil {
		_ = utils.SetCache(ctx, s.Cache, cacheComponentsKey, grouped, catalogCacheTTL)
	}
	return grouped, nil
}

func (s *CatalogService) ComponentByID(id uint) (*entity.Component, error) {
	c, err := s.Components.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("component not found")
		}
		return nil, apperr.Internal(err)
	}
	return c, nil
}

func (s *CatalogService) ListBuilds(predefinedOnly bool) ([]entity.Build, error) {
	ctx := context.Background()
	key := cacheBuildsAllKey
	if predefinedOnly {
		key = cacheBuildsPredefKey
	}

	if s.Cache != nil {
		var cached []entity.Build
		if found, err := utils.GetCache(ctx, s.Cache, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	builds, err := s.Builds.ListWithComponents(predefinedOnly)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if s.Cache != nil {
		_ = utils.SetCache(ctx, s.Cache, key, builds, catalogCacheTTL)
	}
	return builds, nil
}

func (s *CatalogService) BuildComponents(buildID uint) ([]entity.Component, error) {
	if _, err := s.Builds.GetByID(buildID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("build not found")
		}
		return nil, apperr.Internal(err)
	}
	components, err := s.Builds.GetComponents(buildID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return components, nil
}

type CreateBuildIn struct {
	Name         string `json:"name" binding:"required"`
	TotalPrice   int64  `json:"total_price"`
	Components   []uint `json:"components" binding:"required,min=1"`
	IsPredefined bool   `json:"is_predefined"`
}

// CreateBuild stores the build and its component links in one transaction.
// TotalPrice is taken as given: it is display data, never recomputed.
func (s *CatalogService) CreateBuild(in *CreateBuildIn) (*entity.Build, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if in.TotalPrice < 0 {
		return nil, apperr.Validation("total_price must not be negative")
	}
	if len(in.Components) == 0 {
		return nil, apperr.Validation("components is required")
	}
	count, err := s.Components.CountByIDs(in.Components)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count != int64(len(in.Components)) {
		return nil, apperr.Referential("component not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	var build entity.Build
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		build = entity.Build{
			Name:         in.Name,
			ImageURL:     "default_build.jpg",
			TotalPrice:   in.TotalPrice,
			IsPredefined: in.IsPredefined,
		}
		if err := s.Builds.Create(tx, &build); err != nil {
			return err
		}
		return s.Builds.AddComponents(tx, build.ID, in.Components)
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"name":  in.Name,
			"error": err.Error(),
		}).Error("build create failed")
		return nil, apperr.Internal(err)
	}

	s.invalidateBuildCache()

	return s.Builds.GetWithComponents(build.ID)
}

func (s *CatalogService) invalidateBuildCache() {
	if s.Cache == nil {
		return
	}
	if err := utils.DeleteCache(context.Background(), s.Cache, cacheBuildsAllKey, cacheBuildsPredefKey); err != nil {
		logrus.WithField("error", err.Error()).Warn("build cache invalidation failed")
	}
}
