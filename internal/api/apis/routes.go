package apis

import (
	"github.com/gin-gonic/gin"

	"classboard/internal/api/handler"
)

// RegisterPublicRoutes 注册无需认证的公开路由
func RegisterPublicRoutes(router *gin.RouterGroup, contentHandler *handler.ContentHandler, siteHandler *handler.SiteHandler) {
	// 首页聚合数据
	router.GET("/home", contentHandler.Home)

	// 新闻
	router.GET("/news", contentHandler.ListNews)
	router.GET("/news/:id", contentHandler.GetNews)

	// 公开公告
	router.GET("/announcements", contentHandler.ListAnnouncements)
	router.GET("/announcements/:id", contentHandler.GetAnnouncement)

	// 站点信息与联系表单
	router.GET("/site/about", siteHandler.About)
	router.GET("/site/contact", siteHandler.Contact)
	router.POST("/contact", siteHandler.SubmitContact)
}

// RegisterAuthRoutes 注册用户认证相关路由
func RegisterAuthRoutes(router *gin.RouterGroup, userHandler *handler.UserHandler, userAuth gin.HandlerFunc) {
	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)
	router.POST("/logout", userAuth, userHandler.Logout)
}
