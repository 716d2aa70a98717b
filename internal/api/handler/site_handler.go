package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classboard/config"
	"classboard/internal/constants"
	"classboard/internal/model"
	"classboard/internal/service"
	"classboard/internal/types"
	"classboard/pkg/logger"
)

// SiteHandler 站点信息处理器：关于页、联系页与联系表单
type SiteHandler struct {
	site           config.SiteConfig
	contactService *service.ContactService
	logger         *logger.Logger
}

// NewSiteHandler 创建站点信息处理器实例
func NewSiteHandler(site config.SiteConfig, contactService *service.ContactService, logger *logger.Logger) *SiteHandler {
	return &SiteHandler{
		site:           site,
		contactService: contactService,
		logger:         logger,
	}
}

// About 获取关于页信息
// @Summary 获取关于页信息
// @Tags 站点
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/site/about [get]
func (h *SiteHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "success",
		"data": gin.H{
			"name":        h.site.Name,
			"description": h.site.Description,
		},
	})
}

// Contact 获取联系方式
// @Summary 获取联系方式
// @Tags 站点
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/site/contact [get]
func (h *SiteHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "success",
		"data": gin.H{
			"name":    h.site.Name,
			"address": h.site.Address,
			"phone":   h.site.Phone,
			"email":   h.site.Email,
		},
	})
}

// SubmitContact 提交联系表单
// @Summary 提交联系表单
// @Description 保存留言并通知站点管理员
// @Tags 站点
// @Accept json
// @Produce json
// @Param request body types.ContactRequest true "留言内容"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/contact [post]
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	var req types.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	m := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactService.Submit(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "留言已提交"})
}
