package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classboard/internal/content"
	"classboard/internal/repository"
	"classboard/pkg/logger"
)

func newContentServiceWithMocks(t *testing.T) (*ContentService, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewContentService(
		repository.NewContentRepository(sqlxDB, content.CollectionNews),
		repository.NewContentRepository(sqlxDB, content.CollectionAnnouncements),
		repository.NewContentRepository(sqlxDB, content.CollectionAdminAnnouncements),
		redisClient,
		logger.NewLogger("error"),
	)
	return svc, mock, mr
}

func validInput() content.Input {
	return content.Input{
		Title:       "校运会通知",
		Content:     "正文",
		IsPublished: true,
		PublishDate: "2026-05-01",
	}
}

// 创建内容时目标表完全由（种类，子类型）推导，同名同内容的记录
// 因上下文不同而落入不同的表。
func TestContentService_CreateRoutesToCollection(t *testing.T) {
	tests := []struct {
		name       string
		kind       content.Kind
		ctxSubType content.SubType
		formType   string
		wantTable  string
	}{
		{"news", content.KindNews, "", "", "news"},
		{"public announcement", content.KindAnnouncement, content.SubTypePublic, "", "announcements"},
		{"admin announcement", content.KindAnnouncement, content.SubTypeAdmin, "", "admin_announcements"},
		{"form type overrides context", content.KindAnnouncement, content.SubTypePublic, "Admin", "admin_announcements"},
		{"announcement without subtype defaults public", content.KindAnnouncement, "", "", "announcements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock, _ := newContentServiceWithMocks(t)

			in := validInput()
			in.AnnouncementType = tt.formType

			mock.ExpectExec(fmt.Sprintf("INSERT INTO %s ", tt.wantTable)).
				WillReturnResult(sqlmock.NewResult(7, 1))

			rec, collection, err := svc.Create(context.Background(), tt.kind, tt.ctxSubType, in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTable, collection)
			assert.Equal(t, int64(7), rec.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// 新闻表写入image_url列，公告表写入importance列，彼此不串
func TestContentService_CreatePrunesColumnsPerKind(t *testing.T) {
	svc, mock, _ := newContentServiceWithMocks(t)

	in := validInput()
	in.ImageURL = "https://cdn.example.com/a.jpg"
	in.Importance = "High" // 新闻上下文中该字段被裁剪

	mock.ExpectExec(`INSERT INTO news \(title, content, image_url,`).
		WithArgs("校运会通知", "正文", "https://cdn.example.com/a.jpg", true, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec, _, err := svc.Create(context.Background(), content.KindNews, "", in)
	require.NoError(t, err)
	assert.Nil(t, rec.Importance)

	mock.ExpectExec(`INSERT INTO announcements \(title, content, importance,`).
		WithArgs("校运会通知", "正文", "High", true, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(2, 1))

	in.ImageURL = "https://cdn.example.com/a.jpg" // 公告上下文中该字段被裁剪
	rec, _, err = svc.Create(context.Background(), content.KindAnnouncement, content.SubTypePublic, in)
	require.NoError(t, err)
	assert.Nil(t, rec.ImageURL)

	require.NoError(t, mock.ExpectationsWereMet())
}

// 校验失败时不应有任何SQL执行
func TestContentService_CreateInvalidInputNoWrite(t *testing.T) {
	svc, mock, _ := newContentServiceWithMocks(t)

	in := validInput()
	in.Title = "   "

	_, _, err := svc.Create(context.Background(), content.KindNews, "", in)
	var verr *content.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 编辑公告时集合由当前上下文推导。若记录不在该集合中（例如在公开
// 公告页面编辑一条管理员公告），更新被拒绝，不会迁移或另建记录。
func TestContentService_UpdateRejectsRecordOutsideDerivedCollection(t *testing.T) {
	svc, mock, _ := newContentServiceWithMocks(t)

	mock.ExpectQuery(`SELECT \* FROM announcements WHERE id = \?`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Update(context.Background(), content.KindAnnouncement, content.SubTypePublic, 42, validInput())
	require.ErrorIs(t, err, ErrContentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentService_UpdateWritesBackSameCollection(t *testing.T) {
	svc, mock, _ := newContentServiceWithMocks(t)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "content", "importance", "is_published", "publish_date", "expiry_date", "created_at", "updated_at"}).
		AddRow(42, "旧标题", "旧正文", "Low", false, time.Now(), nil, created, created)
	mock.ExpectQuery(`SELECT \* FROM admin_announcements WHERE id = \?`).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	in := validInput()
	in.Importance = "High"
	mock.ExpectExec(`UPDATE admin_announcements SET `).
		WithArgs("校运会通知", "正文", "High", true, sqlmock.AnyArg(), nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := svc.Update(context.Background(), content.KindAnnouncement, content.SubTypeAdmin, 42, in)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, created, rec.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 公开列表第二次请求命中缓存，不再查询数据库
func TestContentService_ListPublishedUsesCache(t *testing.T) {
	svc, mock, _ := newContentServiceWithMocks(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM news WHERE is_published = true`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows([]string{"id", "title", "content", "image_url", "is_published", "publish_date", "expiry_date", "created_at", "updated_at"}).
		AddRow(1, "标题", "正文", nil, true, time.Now(), nil, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM news WHERE is_published = true ORDER BY publish_date DESC`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	first, err := svc.ListPublished(context.Background(), content.CollectionNews, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Total)

	second, err := svc.ListPublished(context.Background(), content.CollectionNews, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	assert.Len(t, second.Items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 写入只使所属集合的缓存失效，其他集合的缓存保持不动
func TestContentService_CreateInvalidatesOwnCollectionCache(t *testing.T) {
	svc, mock, mr := newContentServiceWithMocks(t)

	require.NoError(t, mr.Set("content:announcements:list:1:10", "cached"))
	require.NoError(t, mr.Set("content:news:list:1:10", "cached"))

	mock.ExpectExec(`INSERT INTO announcements `).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, _, err := svc.Create(context.Background(), content.KindAnnouncement, content.SubTypePublic, validInput())
	require.NoError(t, err)

	assert.False(t, mr.Exists("content:announcements:list:1:10"))
	assert.True(t, mr.Exists("content:news:list:1:10"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// 未发布内容对公开端不可见
func TestContentService_GetPublishedByIDHidesDrafts(t *testing.T) {
	svc, mock, _ := newContentServiceWithMocks(t)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "image_url", "is_published", "publish_date", "expiry_date", "created_at", "updated_at"}).
		AddRow(3, "草稿", "正文", nil, false, time.Now(), nil, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM news WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	_, err := svc.GetPublishedByID(context.Background(), content.CollectionNews, 3)
	require.True(t, errors.Is(err, ErrContentNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
