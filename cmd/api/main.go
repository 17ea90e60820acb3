package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/storynest/storynest-backend/internal/config"
	"github.com/storynest/storynest-backend/internal/handler"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/internal/migration"
	"github.com/storynest/storynest-backend/internal/repository"
	"github.com/storynest/storynest-backend/internal/routes"
	"github.com/storynest/storynest-backend/internal/service"
	pkgcache "github.com/storynest/storynest-backend/pkg/cache"
	pkges "github.com/storynest/storynest-backend/pkg/elasticsearch"
	"github.com/storynest/storynest-backend/pkg/jwt"
	pkglogger "github.com/storynest/storynest-backend/pkg/logger"
	pkgredis "github.com/storynest/storynest-backend/pkg/redis"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.GetLogger().Info().
		Str("env", env).
		Strs("dotenv", dotenvFiles).
		Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.GetLogger().Info().Msg("connected to MySQL")

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Cache store. Redis when configured, otherwise the in-process store;
	// the in-process store is per-instance with no cross-process coherency.
	var cacheStore pkgcache.Store
	if cfg.Redis.Enabled {
		redisClient, redisErr := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if redisErr != nil {
			pkglogger.GetLogger().Warn().Err(redisErr).Msg("Redis unavailable, using in-process cache")
		} else {
			pkglogger.GetLogger().Info().Msg("connected to Redis")
			cacheStore = pkgcache.NewRedisStore(redisClient)
		}
	}
	if cacheStore == nil {
		cacheStore = pkgcache.NewMemoryStore(cfg.Engagement.CacheCapacity)
	}

	// Repositories
	adRepo := repository.NewAdRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Search backend: Elasticsearch when enabled, LIKE fallback otherwise
	searchBackend := service.NewDBBackend(storyRepo)
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, esErr := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if esErr != nil {
			pkglogger.GetLogger().Warn().Err(esErr).Msg("Elasticsearch unavailable, using store fallback")
		} else {
			esBackend, backendErr := service.NewESBackend(context.Background(), esClient)
			if backendErr != nil {
				pkglogger.GetLogger().Warn().Err(backendErr).Msg("Elasticsearch index setup failed, using store fallback")
			} else {
				searchBackend = esBackend
			}
		}
	}

	// Services
	trackingService := service.NewTrackingService(adRepo, service.TrackingConfig{
		ImpressionWindow: cfg.Engagement.ImpressionWindow.Std(),
		ClickWindow:      cfg.Engagement.ClickWindow.Std(),
		ClickLimit:       cfg.Engagement.ClickLimit,
	})
	ratingService := service.NewRatingService(ratingRepo, storyRepo)
	followService := service.NewFollowService(followRepo, storyRepo)
	commentService := service.NewCommentService(commentRepo, cfg.Engagement.CommentMaxDepth)
	progressService := service.NewProgressService(historyRepo, storyRepo)
	searchService := service.NewSearchService(searchBackend, cacheStore, service.SearchConfig{
		SearchTTL:  cfg.Engagement.SearchCacheTTL.Std(),
		SuggestTTL: cfg.Engagement.SuggestCacheTTL.Std(),
	})
	analyticsService := service.NewAnalyticsService(analyticsRepo, adRepo)

	// Handlers
	trackingHandler := handler.NewTrackingHandler(trackingService)
	engagementHandler := handler.NewEngagementHandler(ratingService, followService)
	commentHandler := handler.NewCommentHandler(commentService)
	progressHandler := handler.NewProgressHandler(progressService)
	searchHandler := handler.NewSearchHandler(searchService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL.Std())

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storynest-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(
		router,
		trackingHandler,
		engagementHandler,
		commentHandler,
		progressHandler,
		searchHandler,
		analyticsHandler,
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.GetLogger().Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initDB opens the MySQL connection. TranslateError turns driver duplicate
// key errors into gorm.ErrDuplicatedKey, which the follow path relies on.
func initDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}
