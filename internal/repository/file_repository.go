package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"classboard/internal/model"
)

// FileRepository 文件元数据存储库。只负责元数据，Blob本体由对象存储持有。
type FileRepository struct {
	db *sqlx.DB
}

// NewFileRepository 创建文件元数据存储库实例
func NewFileRepository(db *sqlx.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create 写入文件元数据记录
func (r *FileRepository) Create(ctx context.Context, f *model.File) error {
	query := `INSERT INTO files (id, url, name, type, size, path, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.URL, f.Name, f.Type, f.Size, f.Path, f.UploadedAt)
	return err
}

// GetByID 根据ID获取文件元数据
func (r *FileRepository) GetByID(ctx context.Context, id string) (*model.File, error) {
	var f model.File
	query := "SELECT * FROM files WHERE id = ?"
	if err := r.db.GetContext(ctx, &f, query, id); err != nil {
		return nil, err
	}
	return &f, nil
}

// List 获取文件列表（分页），按上传时间倒序
func (r *FileRepository) List(ctx context.Context, page, limit int) ([]model.File, error) {
	var files []model.File
	offset := (page - 1) * limit
	query := `SELECT * FROM files ORDER BY uploaded_at DESC LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &files, query, limit, offset); err != nil {
		return nil, err
	}
	return files, nil
}

// Count 获取文件总数
func (r *FileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM files"); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete 删除文件元数据记录
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	return err
}
