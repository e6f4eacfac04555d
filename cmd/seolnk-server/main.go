package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/seolnk/seolnk/pkg/seolnk/alias"
	"github.com/seolnk/seolnk/pkg/seolnk/analytics"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/cache"
	"github.com/seolnk/seolnk/pkg/seolnk/config"
	"github.com/seolnk/seolnk/pkg/seolnk/database"
	"github.com/seolnk/seolnk/pkg/seolnk/links"
	"github.com/seolnk/seolnk/pkg/seolnk/logging"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	"github.com/seolnk/seolnk/pkg/seolnk/qr"
	"github.com/seolnk/seolnk/pkg/seolnk/resolve"
)

// @title SEOLnk API
// @version 1.0
// @description Link management: branded aliases, preview cards, expiring links, protected links, and rotators.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT issued by the auth provider. Format: "Bearer {token}"

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Connect to database
	if err := database.Connect(cfg.DBDSN); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("database migrations completed")

	// Optional GeoIP enrichment for analytics
	var geo *analytics.Geo
	if cfg.GeoIPDBPath != "" {
		g, err := analytics.OpenGeo(cfg.GeoIPDBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.GeoIPDBPath).Msg("failed to open GeoIP database")
		}
		geo = g
		defer geo.Close()
	}

	// Analytics sink: ClickHouse when configured, otherwise the
	// primary database
	var emitter analytics.Emitter
	if cfg.ClickHouseAddr != "" {
		ch, err := analytics.ConnectClickHouse(
			cfg.ClickHouseAddr, cfg.ClickHouseUser, cfg.ClickHousePassword, cfg.ClickHouseDB, geo)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to ClickHouse")
		}
		defer ch.Close()
		emitter = ch
		log.Info().Str("addr", cfg.ClickHouseAddr).Msg("analytics sink: clickhouse")
	} else {
		emitter = analytics.NewStore(database.GetDB(), geo)
	}

	// Optional Redis resolve cache
	var resolveCache *cache.Cache
	if cfg.RedisAddr != "" {
		rc, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to Redis")
		}
		resolveCache = rc
		defer resolveCache.Close()
		log.Info().Str("addr", cfg.RedisAddr).Msg("alias resolve cache enabled")
	}

	// Set up Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes (owner-authenticated)
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "seolnk",
			})
		})

		authed := api.Group("", auth.AuthMiddleware())

		policy := alias.NewPolicy()
		linksHandler := links.NewHandler(database.GetDB(), policy, resolveCache)
		linksHandler.RegisterRoutes(authed)

		statsHandler := analytics.NewHandler(database.GetDB())
		statsHandler.RegisterRoutes(authed)

		qrHandler := qr.NewHandler(database.GetDB(), cfg.BaseURL)
		qrHandler.RegisterRoutes(authed)
	}

	// Public resolution routes (registered last)
	resolver := resolve.New(database.GetDB(), emitter, resolve.WithCache(resolveCache))
	resolveHandler := resolve.NewHandler(resolver)
	resolveHandler.RegisterRoutes(r)

	log.Info().Str("port", cfg.Port).Msg("starting SEOLnk server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
