package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/misha4322/ps-server/configs"
	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/repository"
	"github.com/misha4322/ps-server/services"
)

// newTestDB opens a fresh in-memory database. The pool is pinned to a
// single connection because every sqlite :memory: connection is its own
// database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

func seedBuilds(t *testing.T, db *gorm.DB) []entity.Build {
	t.Helper()
	builds := []entity.Build{
		{Name: "Budget Gaming", TotalPrice: 86500, IsPredefined: true},
		{Name: "Mid-Range Gaming", TotalPrice: 144500, IsPredefined: true},
		{Name: "Top Gaming", TotalPrice: 205500, IsPredefined: true},
	}
	for i := range builds {
		require.NoError(t, db.Create(&builds[i]).Error)
	}
	return builds
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := &entity.User{Email: email, Password: "x", Role: "customer"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newCartService(t *testing.T, db *gorm.DB) *services.CartService {
	t.Helper()
	return services.NewCartService(db, repository.NewCartRepository(db), repository.NewBuildRepository(db))
}

func newOrderService(t *testing.T, db *gorm.DB) *services.OrderService {
	t.Helper()
	return services.NewOrderService(db, repository.NewOrderRepository(db), repository.NewBuildRepository(db), nil)
}
