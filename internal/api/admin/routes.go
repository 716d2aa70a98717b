package admin

import (
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 注册管理员API路由。调用方已在该路由组上挂好
// 管理员认证与访问口令两道门禁。
func RegisterAdminRoutes(router *gin.RouterGroup, contentAdminHandler *ContentAdminHandler, fileAdminHandler *FileAdminHandler, messageAdminHandler *MessageAdminHandler) {
	// 内容管理路由，:kind ∈ {news, announcements, admin-announcements}
	content := router.Group("/content/:kind")
	{
		content.GET("", contentAdminHandler.List)
		content.GET("/:id", contentAdminHandler.Get)
		content.POST("/create", contentAdminHandler.Create)
		content.POST("/update", contentAdminHandler.Update)
		content.POST("/delete", contentAdminHandler.Delete)
	}

	// 文件管理路由
	files := router.Group("/files")
	{
		files.GET("", fileAdminHandler.List)
		files.POST("/upload", fileAdminHandler.Upload)
		files.POST("/delete", fileAdminHandler.Delete)
	}

	// 留言管理路由
	router.GET("/contact-messages", messageAdminHandler.List)
}
