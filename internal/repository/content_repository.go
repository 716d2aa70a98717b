package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"classboard/internal/content"
	"classboard/internal/model"
)

// ContentRepository 内容存储库，按集合（数据表）实例化。
// 三个集合共用同一套操作，但写入的列按集合不同：新闻表持有image_url，
// 两张公告表持有importance。
type ContentRepository struct {
	db    *sqlx.DB
	table string
}

// NewContentRepository 创建内容存储库实例。
// 表名必须是internal/content定义的集合常量之一，不接受外部输入。
func NewContentRepository(db *sqlx.DB, table string) *ContentRepository {
	switch table {
	case content.CollectionNews, content.CollectionAnnouncements, content.CollectionAdminAnnouncements:
	default:
		panic(fmt.Sprintf("repository: 未知的内容集合 %q", table))
	}
	return &ContentRepository{db: db, table: table}
}

// Collection 返回该存储库对应的集合标识
func (r *ContentRepository) Collection() string {
	return r.table
}

// Create 创建内容记录，createdAt/updatedAt由数据库侧写入
func (r *ContentRepository) Create(ctx context.Context, c *model.Content) error {
	var query string
	var args []interface{}
	if r.table == content.CollectionNews {
		query = fmt.Sprintf(`INSERT INTO %s (title, content, image_url, is_published, publish_date, expiry_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, r.table)
		args = []interface{}{c.Title, c.Content, c.ImageURL, c.IsPublished, c.PublishDate, c.ExpiryDate}
	} else {
		query = fmt.Sprintf(`INSERT INTO %s (title, content, importance, is_published, publish_date, expiry_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, r.table)
		args = []interface{}{c.Title, c.Content, c.Importance, c.IsPublished, c.PublishDate, c.ExpiryDate}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetByID 根据ID获取内容
func (r *ContentRepository) GetByID(ctx context.Context, id int64) (*model.Content, error) {
	var c model.Content
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = ?", r.table)
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update 更新内容记录，始终写回记录所在的表，不迁移集合
func (r *ContentRepository) Update(ctx context.Context, c *model.Content) error {
	var query string
	var args []interface{}
	if r.table == content.CollectionNews {
		query = fmt.Sprintf(`UPDATE %s SET title = ?, content = ?, image_url = ?, is_published = ?, publish_date = ?, expiry_date = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`, r.table)
		args = []interface{}{c.Title, c.Content, c.ImageURL, c.IsPublished, c.PublishDate, c.ExpiryDate, c.ID}
	} else {
		query = fmt.Sprintf(`UPDATE %s SET title = ?, content = ?, importance = ?, is_published = ?, publish_date = ?, expiry_date = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`, r.table)
		args = []interface{}{c.Title, c.Content, c.Importance, c.IsPublished, c.PublishDate, c.ExpiryDate, c.ID}
	}

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// Delete 删除内容记录
func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.table)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ListPublished 获取已发布内容（分页），按发布日期倒序。
// 仅过滤is_published，不按发布日期或过期日期过滤。
func (r *ContentRepository) ListPublished(ctx context.Context, page, limit int) ([]model.Content, error) {
	var items []model.Content
	offset := (page - 1) * limit
	query := fmt.Sprintf(`SELECT * FROM %s WHERE is_published = true ORDER BY publish_date DESC LIMIT ? OFFSET ?`, r.table)
	if err := r.db.SelectContext(ctx, &items, query, limit, offset); err != nil {
		return nil, err
	}
	return items, nil
}

// CountPublished 获取已发布内容总数
func (r *ContentRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE is_published = true", r.table)
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll 获取全部内容（含未发布，管理端使用），按发布日期倒序
func (r *ContentRepository) ListAll(ctx context.Context, page, limit int) ([]model.Content, error) {
	var items []model.Content
	offset := (page - 1) * limit
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY publish_date DESC LIMIT ? OFFSET ?`, r.table)
	if err := r.db.SelectContext(ctx, &items, query, limit, offset); err != nil {
		return nil, err
	}
	return items, nil
}

// CountAll 获取全部内容总数
func (r *ContentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}
