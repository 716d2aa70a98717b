package api

import (
	"classboard/config"
	"classboard/internal/api/admin"
	"classboard/internal/api/apis"
	"classboard/internal/api/handler"
	"classboard/internal/content"
	"classboard/internal/middleware"
	"classboard/internal/repository"
	"classboard/internal/service"
	"classboard/pkg/async"
	"classboard/pkg/email"
	"classboard/pkg/logger"
	"classboard/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// SetupRouter 设置API路由。返回的Worker由调用方在退出时停止。
func SetupRouter(cfg *config.Config, logger *logger.Logger, db *sqlx.DB, redisClient *redis.Client, store storage.Store) (*gin.Engine, *async.Worker) {
	// 创建Gin引擎
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 使用中间件
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// 创建异步工作器
	worker := async.NewWorker(100, logger)
	worker.Start(5) // 启动5个工作协程

	// 初始化存储库
	userRepo := repository.NewUserRepository(db)
	newsRepo := repository.NewContentRepository(db, content.CollectionNews)
	announcementRepo := repository.NewContentRepository(db, content.CollectionAnnouncements)
	adminAnnouncementRepo := repository.NewContentRepository(db, content.CollectionAdminAnnouncements)
	fileRepo := repository.NewFileRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// 初始化邮件服务
	emailService := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	}, logger)

	// 初始化服务
	userService := service.NewUserService(userRepo, redisClient, logger)
	contentService := service.NewContentService(newsRepo, announcementRepo, adminAnnouncementRepo, redisClient, logger)
	fileService := service.NewFileService(store, fileRepo, worker, logger, cfg.Storage.MaxUploadMB, cfg.Storage.DefaultFolder)
	contactService := service.NewContactService(contactRepo, emailService, worker, logger, cfg.Site.Name, cfg.Email.NotifyTo)

	// 初始化处理器
	userHandler := handler.NewUserHandler(userService, logger)
	contentHandler := handler.NewContentHandler(contentService, logger)
	siteHandler := handler.NewSiteHandler(cfg.Site, contactService, logger)

	// 初始化管理员处理器
	contentAdminHandler := admin.NewContentAdminHandler(contentService, logger)
	fileAdminHandler := admin.NewFileAdminHandler(fileService, logger)
	messageAdminHandler := admin.NewMessageAdminHandler(contactService, logger)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API版本v1
	v1 := router.Group("/api/v1")

	// 注册不需要认证的路由
	apis.RegisterPublicRoutes(v1, contentHandler, siteHandler)

	// 注册用户认证路由
	apis.RegisterAuthRoutes(v1, userHandler, middleware.UserAuth(userService))

	// 注册管理员API路由，管理员身份与访问口令两道门禁叠加
	adminRouter := v1.Group("/admin")
	adminRouter.Use(middleware.AdminAuth(userService))
	adminRouter.Use(middleware.AccessCode(cfg.Admin.AccessCode))
	admin.RegisterAdminRoutes(adminRouter, contentAdminHandler, fileAdminHandler, messageAdminHandler)

	return router, worker
}
