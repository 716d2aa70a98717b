package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"classboard/internal/model"
)

// ContactRepository 联系表单留言存储库
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository 创建联系留言存储库实例
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create 写入留言
func (r *ContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	query := `INSERT INTO contact_messages (name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
	result, err := r.db.ExecContext(ctx, query, m.Name, m.Email, m.Subject, m.Message)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// List 获取留言列表（分页），按时间倒序
func (r *ContactRepository) List(ctx context.Context, page, limit int) ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	offset := (page - 1) * limit
	query := `SELECT * FROM contact_messages ORDER BY created_at DESC LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &messages, query, limit, offset); err != nil {
		return nil, err
	}
	return messages, nil
}

// Count 获取留言总数
func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM contact_messages"); err != nil {
		return 0, err
	}
	return count, nil
}
