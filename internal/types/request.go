package types

import "classboard/internal/content"

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Account  string `json:"account" binding:"required"` // 用户名或邮箱
	Password string `json:"password" binding:"required"`
}

// ContactRequest 联系表单提交请求
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateContentRequest 创建内容请求，字段集由内容路由按种类裁剪
type CreateContentRequest struct {
	content.Input
}

// UpdateContentRequest 更新内容请求
type UpdateContentRequest struct {
	ID int64 `json:"id" binding:"required"`
	content.Input
}

// DeleteContentRequest 删除内容请求
type DeleteContentRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// DeleteFileRequest 删除文件请求
type DeleteFileRequest struct {
	ID string `json:"id" binding:"required"`
}
