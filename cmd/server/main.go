package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"Snapora/internal/config"
	"Snapora/internal/data"
	"Snapora/internal/handler"
	"Snapora/internal/middleware"
	"Snapora/internal/model"
	"Snapora/internal/repository"
	"Snapora/internal/router"
	"Snapora/internal/service"
	"Snapora/internal/storage"
	"Snapora/pkg/logger"
	"Snapora/pkg/oss"
	"Snapora/pkg/rabbitmq"
	"Snapora/pkg/redis"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// .env 不存在时只靠 config.yaml 和环境变量
	if err := godotenv.Load(); err != nil {
		log.Println(".env文件未加载，使用环境变量")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Log.Info("Redis连接成功")

	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	if err := rabbitmq.DeclareQueue(rabbitMQConn, service.QueueBlobCleanup); err != nil {
		logger.Log.Fatalf("声明队列失败: %v", err)
	}
	logger.Log.Info("RabbitMQ连接成功")

	minioClient, err := oss.Client(ctx, oss.Options{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		UseSSL:    cfg.MinIO.UseSSL,
		Bucket:    cfg.MinIO.Bucket,
	})
	if err != nil {
		logger.Log.Fatalf("无法连接到MinIO: %v", err)
	}
	defer oss.Close()
	logger.Log.Info("MinIO连接成功")

	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")
	// 没有这个表就创建，没有列就加列，不会删除和修改已有的列
	err = db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Tag{}, &model.Video{}, &model.Like{}, &model.Comment{}, &model.View{})
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	if err := handler.RegisterValidators(); err != nil {
		logger.Log.Fatalf("注册参数校验规则失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	tagRepo := repository.NewTagRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	viewRepo := repository.NewViewRepository(db)
	sessions := repository.NewViewSessionStore(redisClient, cfg.Session.TTL)

	uow := data.NewUnitOfWork(db, videoRepo, tagRepo, likeRepo, commentRepo, userRepo)
	blobs := storage.NewMinioStore(minioClient, cfg.MinIO.Bucket, cfg.MinIO.URLExpiry)
	cleaner := service.NewBlobCleaner(rabbitMQConn, blobs)

	accessService := service.NewAccessService(followRepo)
	mediaService := service.NewMediaService(blobs)
	userService := service.NewUserService(userRepo, followRepo, videoRepo, uow, blobs, cleaner, cfg.JWT.Secret, cfg.JWT.TTL)
	videoService := service.NewVideoService(videoRepo, tagRepo, uow, blobs, cleaner, cfg.Upload.MaxVideoBytes)
	likeService := service.NewLikeService(videoRepo, likeRepo, accessService, uow)
	commentService := service.NewCommentService(commentRepo, videoRepo, accessService, uow)
	viewService := service.NewViewService(viewRepo, sessions)
	relatedService := service.NewRelatedService(videoRepo)
	searchService := service.NewSearchService(videoRepo)
	watchService := service.NewWatchService(videoService, accessService, viewService, commentService, likeService, relatedService)

	limiter := middleware.NewKeyedRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer limiter.Stop()

	r := router.SetupRouter(router.Options{
		JWTSecret:     cfg.JWT.Secret,
		SessionCookie: cfg.Session.Cookie,
		SessionTTL:    cfg.Session.TTL,
		SessionSecure: cfg.Session.Secure,
		AllowOrigins:  cfg.CORS.AllowOrigins,
		Limiter:       limiter,
		Metrics:       middleware.NewMetricsBuilder(nil),
	}, router.Handlers{
		User:    handler.NewUserHandler(userService, mediaService),
		Video:   handler.NewVideoHandler(videoService, searchService, mediaService),
		Like:    handler.NewLikeHandler(likeService),
		Comment: handler.NewCommentHandler(commentService, mediaService),
		Watch:   handler.NewWatchHandler(watchService, viewService, mediaService),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Log.Infof("服务器将在 %s 启动", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("收到退出信号，开始关闭服务器")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("服务器关闭失败")
	}
	logger.Log.Info("服务器已退出")
}
