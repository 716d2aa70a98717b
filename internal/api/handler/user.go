package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"classboard/internal/constants"
	"classboard/internal/service"
	"classboard/internal/types"
	"classboard/pkg/logger"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// UserHandler 用户处理器
type UserHandler struct {
	userService *service.UserService
	logger      *logger.Logger
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userService *service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register 用户注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body types.RegisterRequest true "注册信息"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	if !usernamePattern.MatchString(req.Username) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "用户名只能包含英文、数字和下划线，长度3-20位"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "密码长度不能少于6位"})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "邮箱格式不正确"})
		return
	}

	_, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrUsernameExists):
		c.JSON(http.StatusOK, gin.H{"code": 409, "msg": constants.ErrUsernameExists})
		return
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusOK, gin.H{"code": 409, "msg": constants.ErrEmailExists})
		return
	case errors.Is(err, service.ErrTooFrequent):
		c.JSON(http.StatusOK, gin.H{"code": 429, "msg": constants.ErrOperationTooFrequent})
		return
	case err != nil:
		h.logger.Error("注册失败", "username", req.Username, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessRegister})
}

// Login 用户登录
// @Summary 用户登录
// @Description 支持用户名或邮箱登录，成功后返回会话Token
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body types.LoginRequest true "登录信息"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Account, req.Password)
	if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrPasswordIncorrect) {
		c.JSON(http.StatusOK, gin.H{"code": 401, "msg": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("登录失败", "account", req.Account, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessLogin,
		"data": gin.H{
			"token":    user.Token,
			"group_id": user.GroupID,
		},
	})
}

// Logout 用户登出
// @Summary 用户登出
// @Description 清空当前会话Token
// @Tags 用户
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrUnauthorized})
		return
	}

	if err := h.userService.Logout(c.Request.Context(), token); err != nil {
		h.logger.Error("登出失败", "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "已登出"})
}
