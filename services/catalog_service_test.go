package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/repository"
	"github.com/misha4322/ps-server/services"
)

func newCatalogService(t *testing.T, db *gorm.DB) *services.CatalogService {
	t.Helper()
	return services.NewCatalogService(db, repository.NewComponentRepository(db), repository.NewBuildRepository(db), nil)
}

func seedComponents(t *testing.T, db *gorm.DB) []entity.Component {
	t.Helper()
	components := []entity.Component{
		{Category: entity.CategoryProcessor, Name: "Ryzen 5 5600", Price: 13500, Socket: "AM4", Brand: "AMD"},
		{Category: entity.CategoryProcessor, Name: "Core i5-12400F", Price: 12900, Socket: "LGA1700", Brand: "Intel"},
		{Category: entity.CategoryVideoCard, Name: "RTX 4060", Price: 34000, Brand: "NVIDIA"},
		{Category: entity.CategoryMemory, Name: "16GB DDR4", Price: 4200},
	}
	for i := range components {
		require.NoError(t, db.Create(&components[i]).Error)
	}
	return components
}

func TestCatalogComponentsGrouped(t *testing.T) {
	db := newTestDB(t)
	seedComponents(t, db)
	svc := newCatalogService(t, db)

	grouped, err := svc.ComponentsGrouped()
	require.NoError(t, err)
	require.Len(t, grouped[entity.CategoryProcessor], 2)
	require.Len(t, grouped[entity.CategoryVideoCard], 1)
	require.Len(t, grouped[entity.CategoryMemory], 1)

	// within a category the listing is alphabetical
	require.Equal(t, "Core i5-12400F", grouped[entity.CategoryProcessor][0].Name)
}

func TestCatalogComponentByID(t *testing.T) {
	db := newTestDB(t)
	components := seedComponents(t, db)
	svc := newCatalogService(t, db)

	c, err := svc.ComponentByID(components[0].ID)
	require.NoError(t, err)
	require.Equal(t, components[0].Name, c.Name)

	_, err = svc.ComponentByID(9999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCatalogListBuildsPredefinedFilter(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	custom := entity.Build{Name: "My Custom", TotalPrice: 99000}
	require.NoError(t, db.Create(&custom).Error)
	svc := newCatalogService(t, db)

	all, err := svc.ListBuilds(false)
	require.NoError(t, err)
	require.Len(t, all, len(builds)+1)

	predefined, err := svc.ListBuilds(true)
	require.NoError(t, err)
	require.Len(t, predefined, len(builds))
	for _, b := range predefined {
		require.True(t, b.IsPredefined)
	}
}

func TestCatalogCreateBuild(t *testing.T) {
	db := newTestDB(t)
	components := seedComponents(t, db)
	svc := newCatalogService(t, db)

	build, err := svc.CreateBuild(&services.CreateBuildIn{
		Name:       "Office PC",
		TotalPrice: 51700,
		Components: []uint{components[0].ID, components[2].ID, components[3].ID},
	})
	require.NoError(t, err)
	require.Equal(t, "Office PC", build.Name)
	require.Equal(t, "default_build.jpg", build.ImageURL)
	require.Len(t, build.Components, 3)
	require.False(t, build.IsPredefined)

	got, err := svc.BuildComponents(build.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestCatalogCreateBuildUnknownComponent(t *testing.T) {
	db := newTestDB(t)
	components := seedComponents(t, db)
	svc := newCatalogService(t, db)

	_, err := svc.CreateBuild(&services.CreateBuildIn{
		Name:       "Broken",
		TotalPrice: 100,
		Components: []uint{components[0].ID, 9999},
	})
	require.Equal(t, apperr.KindReferential, apperr.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&entity.Build{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCatalogBuildComponentsUnknownBuild(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(t, db)

	_, err := svc.BuildComponents(9999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
