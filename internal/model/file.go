package model

import "time"

// File 上传文件的元数据记录，与对象存储中的Blob本体分离。
// Path是存储键（{目录}/{毫秒时间戳}_{原始文件名}），删除文件时
// Blob与元数据是两次独立的远程调用，没有事务保证。
type File struct {
	ID         string    `db:"id" json:"id"`
	URL        string    `db:"url" json:"url"`
	Name       string    `db:"name" json:"name"`
	Type       string    `db:"type" json:"type"` // MIME类型
	Size       int64     `db:"size" json:"size"` // 字节数
	Path       string    `db:"path" json:"path"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// PaginatedFiles 分页文件列表结果
type PaginatedFiles struct {
	Total int64  `json:"total"`
	Items []File `json:"items"`
}
