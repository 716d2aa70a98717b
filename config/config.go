package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用程序配置
type Config struct {
	APIPort  int
	LogLevel string
	LogFile  LogFileConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Email    EmailConfig
	Site     SiteConfig
	Admin    AdminConfig
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int // 单个文件最大大小，单位MB
	MaxBackups int // 最大保留旧文件数量
	MaxAge     int // 最大保留天数
	Compress   bool
}

// DatabaseConfig MySQL数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// StorageConfig 对象存储配置（S3兼容接口）
type StorageConfig struct {
	Endpoint      string // 存储服务地址，留空使用AWS默认端点
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	BaseURL       string // 对外可访问的下载地址前缀
	MaxUploadMB   int64  // 单文件上传大小上限，单位MB
	DefaultFolder string // 未指定目录时的默认上传目录
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Host     string // SMTP服务器地址
	Port     int    // SMTP服务器端口
	Username string // 邮箱账号
	Password string // 邮箱密码
	From     string // 发件人
	FromName string // 发件人名称
	NotifyTo string // 联系表单通知收件人
}

// SiteConfig 站点信息配置，用于关于/联系页面
type SiteConfig struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
}

// AdminConfig 内容管理配置
type AdminConfig struct {
	// AccessCode 内容管理接口的静态访问口令，独立于账号体系的第二道门禁。
	// 留空表示关闭该门禁。该口令随请求明文传输，不构成安全边界。
	AccessCode string
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	// 加载.env文件
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return &Config{
		APIPort:  envInt("API_PORT", 8080),
		LogLevel: os.Getenv("LOG_LEVEL"),
		LogFile: LogFileConfig{
			Enabled:    envBool("LOG_FILE_ENABLED", false),
			Path:       os.Getenv("LOG_FILE_PATH"),
			MaxSize:    envInt("LOG_FILE_MAX_SIZE", 100),
			MaxBackups: envInt("LOG_FILE_MAX_BACKUPS", 7),
			MaxAge:     envInt("LOG_FILE_MAX_AGE", 30),
			Compress:   envBool("LOG_FILE_COMPRESS", true),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     envInt("DB_PORT", 3306),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     envInt("REDIS_PORT", 6379),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Storage: StorageConfig{
			Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
			Region:        os.Getenv("STORAGE_REGION"),
			Bucket:        os.Getenv("STORAGE_BUCKET"),
			AccessKey:     os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:     os.Getenv("STORAGE_SECRET_KEY"),
			BaseURL:       os.Getenv("STORAGE_BASE_URL"),
			MaxUploadMB:   int64(envInt("STORAGE_MAX_UPLOAD_MB", 50)),
			DefaultFolder: envDefault("STORAGE_DEFAULT_FOLDER", "uploads"),
		},
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			Port:     envInt("EMAIL_PORT", 587),
			Username: os.Getenv("EMAIL_USERNAME"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     os.Getenv("EMAIL_FROM"),
			FromName: os.Getenv("EMAIL_FROM_NAME"),
			NotifyTo: os.Getenv("EMAIL_NOTIFY_TO"),
		},
		Site: SiteConfig{
			Name:        envDefault("SITE_NAME", "我们的班级"),
			Description: os.Getenv("SITE_DESCRIPTION"),
			Address:     os.Getenv("SITE_ADDRESS"),
			Phone:       os.Getenv("SITE_PHONE"),
			Email:       os.Getenv("SITE_EMAIL"),
		},
		Admin: AdminConfig{
			AccessCode: os.Getenv("ADMIN_ACCESS_CODE"),
		},
	}, nil
}

// envInt 解析整数环境变量，解析失败时返回默认值
func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// envBool 解析布尔环境变量
func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// envDefault 读取字符串环境变量，为空时返回默认值
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
