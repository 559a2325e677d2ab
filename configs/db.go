package configs

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
)

// OpenDB opens the configured database and returns the handle. There is no
// package-level connection: callers inject the handle into repositories.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

// SetupDatabase registers the explicit build⇄component join table and
// migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	if err := db.SetupJoinTable(&entity.Build{}, "Components", &entity.BuildComponent{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&entity.User{},
		&entity.Component{}, &entity.Build{},
		&entity.Favorite{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	)
}
