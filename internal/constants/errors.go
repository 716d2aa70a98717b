package constants

// 通用错误消息
const (
	// 认证相关错误
	ErrUnauthorized           = "未授权，请先登录"
	ErrInvalidToken           = "无效的Token"
	ErrInsufficientPermission = "权限不足"
	ErrAccessCodeRequired     = "请输入管理访问口令"
	ErrAccessCodeIncorrect    = "管理访问口令错误"

	// 用户相关错误
	ErrUserNotFound      = "用户不存在"
	ErrPasswordIncorrect = "密码错误"
	ErrUsernameExists    = "用户名已存在"
	ErrEmailExists       = "该邮箱已被注册"

	// 内容相关错误
	ErrContentNotFound = "内容不存在或获取失败"
	ErrUnknownKind     = "未知的内容类型"

	// 文件相关错误
	ErrFileNotFound = "文件不存在"
	ErrFileTooLarge = "文件大小超出上限"

	// 参数相关错误
	ErrInvalidParams = "参数错误"

	// 系统错误
	ErrInternalServer       = "服务器内部错误"
	ErrOperationTooFrequent = "请求过于频繁，请稍后重试"
)

// 成功消息
const (
	SuccessLogin    = "登录成功"
	SuccessRegister = "注册成功"
	SuccessCreate   = "创建成功"
	SuccessUpdate   = "更新成功"
	SuccessDelete   = "删除成功"
	SuccessGet      = "获取成功"
	SuccessUpload   = "上传成功"
)
