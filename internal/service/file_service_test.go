package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classboard/internal/repository"
	"classboard/pkg/async"
	"classboard/pkg/logger"
)

// fakeStore 记录每次远程调用的计数Store
type fakeStore struct {
	mu        sync.Mutex
	uploads   int
	deletes   int
	lastKey   string
	uploadErr error
	deleteErr error
}

func (f *fakeStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string, onProgress func(int)) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	f.lastKey = key
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.lastKey = key
	return f.deleteErr
}

func (f *fakeStore) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads, f.deletes
}

func newFileServiceWithMocks(t *testing.T, store *fakeStore) (*FileService, sqlmock.Sqlmock, *async.Worker) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewLogger("error")
	worker := async.NewWorker(10, log)
	worker.Start(1)

	svc := NewFileService(store, repository.NewFileRepository(sqlx.NewDb(db, "sqlmock")), worker, log, 50, "uploads")
	return svc, mock, worker
}

// 超出大小上限的上传在任何远程调用之前被拒绝
func TestFileService_UploadRejectsOversizedBeforeAnyCall(t *testing.T) {
	store := &fakeStore{}
	svc, mock, worker := newFileServiceWithMocks(t, store)
	defer worker.Stop()

	_, err := svc.Upload(context.Background(), "", "big.zip", "application/zip", 51*1024*1024, strings.NewReader("x"), nil)
	require.ErrorIs(t, err, ErrFileTooLarge)

	uploads, deletes := store.counts()
	assert.Zero(t, uploads)
	assert.Zero(t, deletes)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 存储键形如 {目录}/{毫秒时间戳}_{原始文件名}，上传时间取自本次调用
func TestFileService_UploadKeyAndMetadata(t *testing.T) {
	store := &fakeStore{}
	svc, mock, worker := newFileServiceWithMocks(t, store)
	defer worker.Stop()

	mock.ExpectExec(`INSERT INTO files `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	before := time.Now()
	f, err := svc.Upload(context.Background(), "", "报名表.pdf", "application/pdf", 1024, strings.NewReader(strings.Repeat("x", 1024)), nil)
	after := time.Now()
	require.NoError(t, err)

	keyPattern := regexp.MustCompile(`^uploads/(\d+)_报名表\.pdf$`)
	m := keyPattern.FindStringSubmatch(f.Path)
	require.NotNil(t, m, "存储键格式不符: %s", f.Path)

	var ts int64
	_, err = fmt.Sscanf(m[1], "%d", &ts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before.UnixMilli())
	assert.LessOrEqual(t, ts, after.UnixMilli())

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "https://cdn.example.com/"+f.Path, f.URL)
	assert.False(t, f.UploadedAt.Before(before))
	assert.False(t, f.UploadedAt.After(after))
	require.NoError(t, mock.ExpectationsWereMet())
}

// 指定目录时顶替默认目录
func TestFileService_UploadCustomFolder(t *testing.T) {
	store := &fakeStore{}
	svc, mock, worker := newFileServiceWithMocks(t, store)
	defer worker.Stop()

	mock.ExpectExec(`INSERT INTO files `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	f, err := svc.Upload(context.Background(), "gallery", "a.jpg", "image/jpeg", 3, strings.NewReader("abc"), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.Path, "gallery/"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// 元数据写入失败后异步补偿删除已上传的Blob
func TestFileService_UploadCompensatesBlobOnMetadataFailure(t *testing.T) {
	store := &fakeStore{}
	svc, mock, worker := newFileServiceWithMocks(t, store)

	mock.ExpectExec(`INSERT INTO files `).
		WillReturnError(errors.New("insert failed"))

	_, err := svc.Upload(context.Background(), "", "a.txt", "text/plain", 3, strings.NewReader("abc"), nil)
	require.Error(t, err)

	// 排空任务队列，等补偿任务执行完
	worker.Stop()

	uploads, deletes := store.counts()
	assert.Equal(t, 1, uploads)
	assert.Equal(t, 1, deletes)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 删除文件恰好发起一次Blob删除和一次元数据删除
func TestFileService_DeleteIssuesOneBlobAndOneMetadataCall(t *testing.T) {
	store := &fakeStore{}
	svc, mock, worker := newFileServiceWithMocks(t, store)
	defer worker.Stop()

	rows := sqlmock.NewRows([]string{"id", "url", "name", "type", "size", "path", "uploaded_at"}).
		AddRow("f1", "https://cdn.example.com/uploads/1_a.txt", "a.txt", "text/plain", 3, "uploads/1_a.txt", time.Now())
	mock.ExpectQuery(`SELECT \* FROM files WHERE id = \?`).
		WithArgs("f1").
		WillReturnRows(rows)
	mock.ExpectExec(`DELETE FROM files WHERE id = \?`).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Delete(context.Background(), "f1"))

	uploads, deletes := store.counts()
	assert.Zero(t, uploads)
	assert.Equal(t, 1, deletes)
	assert.Equal(t, "uploads/1_a.txt", store.lastKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Blob删除失败时仍然尝试删除元数据，错误向上返回
func TestFileService_DeleteAttemptsMetadataEvenIfBlobFails(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("blob gone wrong")}
	svc, mock, worker := newFileServiceWithMocks(t, store)
	defer worker.Stop()

	rows := sqlmock.NewRows([]string{"id", "url", "name", "type", "size", "path", "uploaded_at"}).
		AddRow("f1", "u", "a.txt", "text/plain", 3, "uploads/1_a.txt", time.Now())
	mock.ExpectQuery(`SELECT \* FROM files WHERE id = \?`).
		WithArgs("f1").
		WillReturnRows(rows)
	mock.ExpectExec(`DELETE FROM files WHERE id = \?`).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Delete(context.Background(), "f1")
	require.ErrorContains(t, err, "blob gone wrong")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFileService_DeleteUnknownID(t *testing.T) {
	store := &fakeStore{}
	svc, mock, worker := newFileServiceWithMocks(t, store)
	defer worker.Stop()

	mock.ExpectQuery(`SELECT \* FROM files WHERE id = \?`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	err := svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, ErrFileNotFound)

	_, deletes := store.counts()
	assert.Zero(t, deletes)
	require.NoError(t, mock.ExpectationsWereMet())
}
