package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/misha4322/ps-server/configs"
	"github.com/misha4322/ps-server/controllers"
	"github.com/misha4322/ps-server/middlewares"
	"github.com/misha4322/ps-server/repository"
	"github.com/misha4322/ps-server/routes"
	"github.com/misha4322/ps-server/services"
	"github.com/misha4322/ps-server/ws"
)

func main() {
	cfg := configs.LoadConfig()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if !cfg.IsProd {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	db, err := configs.OpenDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("open database failed")
	}
	if err := configs.SetupDatabase(db); err != nil {
		logrus.WithError(err).Fatal("migrate failed")
	}
	if err := configs.SeedAdmin(db, cfg); err != nil {
		logrus.WithError(err).Fatal("seed admin failed")
	}
	if err := configs.SeedCatalog(db); err != nil {
		logrus.WithError(err).Fatal("seed catalog failed")
	}

	// Cache is optional. When REDIS_ADDR is unset the catalog runs uncached.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Fatal("redis ping failed")
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, catalog cache disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	buildRepo := repository.NewBuildRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	feed := ws.NewOrderFeed()

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	catalogSvc := services.NewCatalogService(db, componentRepo, buildRepo, rdb)
	cartSvc := services.NewCartService(db, cartRepo, buildRepo)
	orderSvc := services.NewOrderService(db, orderRepo, buildRepo, feed)
	favoriteSvc := services.NewFavoriteService(favoriteRepo, buildRepo)

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret: cfg.JWTSecret,
		Auth:      controllers.NewAuthController(authSvc),
		Component: controllers.NewComponentController(catalogSvc),
		Build:     controllers.NewBuildController(catalogSvc),
		Favorite:  controllers.NewFavoriteController(favoriteSvc),
		Cart:      controllers.NewCartController(cartSvc),
		Order:     controllers.NewOrderController(orderSvc),
		Admin:     controllers.NewAdminController(orderSvc, feed),
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	logrus.WithField("addr", addr).Info("server starting")
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
