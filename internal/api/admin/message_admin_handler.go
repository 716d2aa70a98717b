package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classboard/internal/constants"
	"classboard/internal/service"
	"classboard/pkg/logger"
)

// MessageAdminHandler 留言管理处理器
type MessageAdminHandler struct {
	contactService *service.ContactService
	logger         *logger.Logger
}

// NewMessageAdminHandler 创建留言管理处理器实例
func NewMessageAdminHandler(contactService *service.ContactService, logger *logger.Logger) *MessageAdminHandler {
	return &MessageAdminHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// List 获取联系留言列表
// @Summary 获取联系留言列表
// @Tags 留言管理
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认20"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/contact-messages [get]
func (h *MessageAdminHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	messages, total, err := h.contactService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("获取留言列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessGet,
		"data": gin.H{"total": total, "items": messages},
	})
}
