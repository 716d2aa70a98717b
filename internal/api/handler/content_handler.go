package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classboard/internal/constants"
	"classboard/internal/content"
	"classboard/internal/service"
	"classboard/pkg/logger"
)

// ContentHandler 公开内容处理器，只提供已发布内容
type ContentHandler struct {
	contentService *service.ContentService
	logger         *logger.Logger
}

// NewContentHandler 创建公开内容处理器实例
func NewContentHandler(contentService *service.ContentService, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// pagination 解析分页参数
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

// Home 获取首页内容
// @Summary 获取首页内容
// @Description 获取已发布的新闻与公开公告，按发布日期倒序
// @Tags 内容
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/home [get]
func (h *ContentHandler) Home(c *gin.Context) {
	page, limit := pagination(c)
	ctx := c.Request.Context()

	news, err := h.contentService.ListPublished(ctx, content.CollectionNews, page, limit)
	if err != nil {
		h.logger.Error("获取首页新闻失败", "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	announcements, err := h.contentService.ListPublished(ctx, content.CollectionAnnouncements, page, limit)
	if err != nil {
		h.logger.Error("获取首页公告失败", "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "success",
		"data": gin.H{
			"news":          news,
			"announcements": announcements,
		},
	})
}

// ListNews 获取新闻列表
// @Summary 获取新闻列表
// @Description 获取已发布新闻，支持分页
// @Tags 内容
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param limit query int false "每页条数，默认10"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/news [get]
func (h *ContentHandler) ListNews(c *gin.Context) {
	h.listPublished(c, content.CollectionNews)
}

// GetNews 获取新闻详情
// @Summary 获取新闻详情
// @Tags 内容
// @Accept json
// @Produce json
// @Param id path int true "新闻ID"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/news/{id} [get]
func (h *ContentHandler) GetNews(c *gin.Context) {
	h.getPublished(c, content.CollectionNews)
}

// ListAnnouncements 获取公告列表
// @Summary 获取公告列表
// @Description 获取已发布的公开公告，支持分页。管理员公告不在此接口返回。
// @Tags 内容
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param limit query int false "每页条数，默认10"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/announcements [get]
func (h *ContentHandler) ListAnnouncements(c *gin.Context) {
	h.listPublished(c, content.CollectionAnnouncements)
}

// GetAnnouncement 获取公告详情
// @Summary 获取公告详情
// @Tags 内容
// @Accept json
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/announcements/{id} [get]
func (h *ContentHandler) GetAnnouncement(c *gin.Context) {
	h.getPublished(c, content.CollectionAnnouncements)
}

func (h *ContentHandler) listPublished(c *gin.Context, collection string) {
	page, limit := pagination(c)
	result, err := h.contentService.ListPublished(c.Request.Context(), collection, page, limit)
	if err != nil {
		h.logger.Error("获取内容列表失败", "collection", collection, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success", "data": result})
}

func (h *ContentHandler) getPublished(c *gin.Context, collection string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	rec, err := h.contentService.GetPublishedByID(c.Request.Context(), collection, id)
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
