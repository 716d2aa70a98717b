package model

import "time"

// 公告重要程度
const (
	ImportanceLow    = "Low"
	ImportanceMedium = "Medium"
	ImportanceHigh   = "High"
)

// Content 内容记录，news、announcements、admin_announcements三张表共用同一结构。
// ImageURL仅新闻持有，Importance仅公告持有，入库前由internal/content裁剪，
// 不相关的字段不会写入对应的表。
type Content struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	ImageURL    *string    `db:"image_url" json:"image_url,omitempty"`
	Importance  *string    `db:"importance" json:"importance,omitempty"`
	IsPublished bool       `db:"is_published" json:"is_published"`
	PublishDate time.Time  `db:"publish_date" json:"publish_date"`
	ExpiryDate  *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"-"`
	UpdatedAt   time.Time  `db:"updated_at" json:"-"`
}

// PaginatedContent 分页内容结果
type PaginatedContent struct {
	Total int64     `json:"total"`
	Items []Content `json:"items"`
}
