package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classboard/internal/constants"
	"classboard/internal/service"
	"classboard/internal/types"
	"classboard/pkg/logger"
)

// FileAdminHandler 文件管理处理器
type FileAdminHandler struct {
	fileService *service.FileService
	logger      *logger.Logger
}

// NewFileAdminHandler 创建文件管理处理器实例
func NewFileAdminHandler(fileService *service.FileService, logger *logger.Logger) *FileAdminHandler {
	return &FileAdminHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// List 获取文件列表
// @Summary 获取文件列表
// @Description 获取已上传文件的元数据列表，按上传时间倒序
// @Tags 文件管理
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认20"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/files [get]
func (h *FileAdminHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	result, err := h.fileService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("获取文件列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessGet, "data": result})
}

// Upload 上传文件
// @Summary 上传文件
// @Description 上传文件到对象存储并写入元数据记录。超过大小上限的文件在发起上传前被拒绝。
// @Tags 文件管理
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文件"
// @Param folder formData string false "目标目录，默认uploads"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/files/upload [post]
func (h *FileAdminHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "请选择要上传的文件"})
		return
	}
	folder := c.PostForm("folder")

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("打开上传文件失败", "name", fileHeader.Filename, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	record, err := h.fileService.Upload(
		c.Request.Context(),
		folder,
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		src,
		func(pct int) {
			h.logger.Debug("上传进度", "name", fileHeader.Filename, "percent", pct)
		},
	)
	if errors.Is(err, service.ErrFileTooLarge) {
		c.JSON(http.StatusOK, gin.H{"code": 413, "msg": constants.ErrFileTooLarge})
		return
	}
	if err != nil {
		h.logger.Error("上传文件失败", "name", fileHeader.Filename, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": "上传文件失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessUpload, "data": record})
}

// Delete 删除文件
// @Summary 删除文件
// @Description 删除Blob与元数据记录，两次远程调用都会被尝试
// @Tags 文件管理
// @Accept json
// @Produce json
// @Param request body types.DeleteFileRequest true "文件ID"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/files/delete [post]
func (h *FileAdminHandler) Delete(c *gin.Context) {
	var req types.DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	err := h.fileService.Delete(c.Request.Context(), req.ID)
	if errors.Is(err, service.ErrFileNotFound) {
		c.JSON(http.StatusOK, gin.H{"code": 404, "msg": constants.ErrFileNotFound})
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": "删除文件失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessDelete})
}
