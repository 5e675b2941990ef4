package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	dbadapter "quill/internal/adapters/database"
	"quill/internal/adapters/httpapi"
	redisadapter "quill/internal/adapters/redis"
	"quill/internal/adapters/storage"
	"quill/internal/config"
	commentapp "quill/internal/core/comment/service"
	feedapp "quill/internal/core/feed/service"
	followapp "quill/internal/core/follow/service"
	postapp "quill/internal/core/post/service"
	userapp "quill/internal/core/user/service"
	feedPort "quill/internal/ports/feed"
	"quill/internal/workers"
)

func main() {
	logger, err := config.NewLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := config.OpenDB(cfg.DBDSN)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	logger.Info("database migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The feed cache is optional: without REDIS_ADDR every feed read goes
	// straight to the database.
	var feedCache feedPort.Cache
	if cfg.RedisAddr != "" {
		redisClient, err := config.OpenRedis(ctx, cfg)
		if err != nil {
			logger.Fatal("redis init failed", zap.Error(err))
		}
		defer redisClient.Close()
		feedCache = redisadapter.NewFeedCacheRedis(redisClient, cfg.FeedCacheTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, running without the feed cache")
	}

	images, err := storage.NewDiskImageStore(cfg.MediaDir)
	if err != nil {
		logger.Fatal("media dir init failed", zap.Error(err))
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	followRepo := dbadapter.NewFollowRepositoryDatabase(db)

	userSvc := userapp.NewUserService(userRepo, cfg.JWTSecret)
	postSvc := postapp.NewPostService(postRepo, groupRepo, commentRepo, images, feedCache, logger)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, userRepo)
	followSvc := followapp.NewFollowService(followRepo, userRepo, logger)
	feedSvc := feedapp.NewFeedService(postRepo, userRepo, groupRepo, followRepo, feedCache, logger)

	if feedCache != nil {
		warmer := workers.NewFeedWarmer(feedSvc, cfg.WarmInterval, logger)
		go warmer.Run(ctx)
	}

	r := httpapi.SetupRoutes(
		cfg.JWTSecret,
		cfg.MediaDir,
		userSvc,
		postSvc,
		commentSvc,
		followSvc,
		feedSvc,
	)

	logger.Info("app is running", zap.String("port", cfg.AppPort))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
