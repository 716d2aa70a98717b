package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classboard/internal/constants"
	"classboard/internal/content"
	"classboard/internal/service"
	"classboard/internal/types"
	"classboard/pkg/logger"
)

// ContentAdminHandler 内容管理处理器。路径中的:kind确定内容上下文
// （news、announcements、admin-announcements），集合由上下文推导。
type ContentAdminHandler struct {
	contentService *service.ContentService
	logger         *logger.Logger
}

// NewContentAdminHandler 创建内容管理处理器实例
func NewContentAdminHandler(contentService *service.ContentService, logger *logger.Logger) *ContentAdminHandler {
	return &ContentAdminHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// contentContext 解析路径中的内容上下文
func (h *ContentAdminHandler) contentContext(c *gin.Context) (content.Kind, content.SubType, bool) {
	kind, subType, err := content.ParseContext(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrUnknownKind})
		return "", "", false
	}
	return kind, subType, true
}

// List 获取内容列表（管理端）
// @Summary 获取内容列表（管理端）
// @Description 管理员获取内容列表，包含未发布记录，支持分页
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param kind path string true "内容类型" Enums(news, announcements, admin-announcements)
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认10"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/content/{kind} [get]
func (h *ContentAdminHandler) List(c *gin.Context) {
	kind, subType, ok := h.contentContext(c)
	if !ok {
		return
	}
	collection, err := content.Resolve(kind, subType)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrUnknownKind})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	result, err := h.contentService.ListAllAdmin(c.Request.Context(), collection, page, pageSize)
	if err != nil {
		h.logger.Error("获取管理端内容列表失败", "collection", collection, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	totalPages := int64(0)
	if result.Total > 0 {
		totalPages = (result.Total + int64(pageSize) - 1) / int64(pageSize)
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessGet,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"pages":     totalPages,
			"total":     result.Total,
		},
		"items": result.Items,
	})
}

// Get 获取单条内容（管理端）
// @Summary 获取单条内容（管理端）
// @Description 管理员根据ID获取内容详情，包含未发布记录
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param kind path string true "内容类型" Enums(news, announcements, admin-announcements)
// @Param id path int true "内容ID"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/content/{kind}/{id} [get]
func (h *ContentAdminHandler) Get(c *gin.Context) {
	kind, subType, ok := h.contentContext(c)
	if !ok {
		return
	}
	collection, err := content.Resolve(kind, subType)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrUnknownKind})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	rec, err := h.contentService.GetByIDAdmin(c.Request.Context(), collection, id)
	if errors.Is(err, service.ErrContentNotFound) {
		c.JSON(http.StatusOK, gin.H{"code": 404, "msg": constants.ErrContentNotFound})
		return
	}
	if err != nil {
		h.logger.Error("获取内容详情失败", "collection", collection, "id", id, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success", "data": rec})
}

// Create 创建内容
// @Summary 创建内容
// @Description 管理员创建新闻或公告。新闻不接受公告字段，公告不接受图片字段，提交的多余字段会被裁剪。
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param kind path string true "内容类型" Enums(news, announcements, admin-announcements)
// @Param request body types.CreateContentRequest true "内容信息"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/content/{kind}/create [post]
func (h *ContentAdminHandler) Create(c *gin.Context) {
	kind, subType, ok := h.contentContext(c)
	if !ok {
		return
	}

	var req types.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams + "：" + err.Error()})
		return
	}

	rec, collection, err := h.contentService.Create(c.Request.Context(), kind, subType, req.Input)
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": verr.Message, "field": verr.Field})
		return
	}
	if err != nil {
		h.logger.Error("创建内容失败", "kind", kind, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessCreate,
		"data": gin.H{"collection": collection, "content": rec},
	})
}

// Update 更新内容
// @Summary 更新内容
// @Description 管理员更新现有内容。目标集合由路径中的内容类型推导，公告子类型在创建后不可变更；记录不在推导出的集合中时更新被拒绝。
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param kind path string true "内容类型" Enums(news, announcements, admin-announcements)
// @Param request body types.UpdateContentRequest true "内容ID和内容信息"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/content/{kind}/update [post]
func (h *ContentAdminHandler) Update(c *gin.Context) {
	kind, subType, ok := h.contentContext(c)
	if !ok {
		return
	}

	var req types.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams + "：" + err.Error()})
		return
	}

	rec, err := h.contentService.Update(c.Request.Context(), kind, subType, req.ID, req.Input)
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": verr.Message, "field": verr.Field})
		return
	case errors.Is(err, service.ErrContentNotFound):
		c.JSON(http.StatusOK, gin.H{"code": 404, "msg": constants.ErrContentNotFound})
		return
	case err != nil:
		h.logger.Error("更新内容失败", "kind", kind, "id", req.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessUpdate, "data": rec})
}

// Delete 删除内容
// @Summary 删除内容
// @Tags 内容管理
// @Accept json
// @Produce json
// @Param kind path string true "内容类型" Enums(news, announcements, admin-announcements)
// @Param request body types.DeleteContentRequest true "内容ID"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/content/{kind}/delete [post]
func (h *ContentAdminHandler) Delete(c *gin.Context) {
	kind, subType, ok := h.contentContext(c)
	if !ok {
		return
	}

	var req types.DeleteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), kind, subType, req.ID); err != nil {
		h.logger.Error("删除内容失败", "kind", kind, "id", req.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessDelete})
}
