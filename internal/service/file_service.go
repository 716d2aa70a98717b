package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"classboard/internal/model"
	"classboard/internal/repository"
	"classboard/pkg/async"
	"classboard/pkg/logger"
	"classboard/pkg/storage"
)

// 文件服务错误
var (
	ErrFileTooLarge = errors.New("文件大小超出上限")
	ErrFileNotFound = errors.New("文件不存在")
)

// FileService 文件服务：大小预检、Blob上传、元数据落库与两步删除。
// 上传与元数据写入是两次独立的远程调用；元数据写入失败时异步尝试
// 补偿删除已上传的Blob，补偿也失败则留下孤立Blob并单独记录日志。
type FileService struct {
	store         storage.Store
	fileRepo      *repository.FileRepository
	worker        *async.Worker
	logger        *logger.Logger
	maxSize       int64 // 字节
	defaultFolder string
}

// NewFileService 创建文件服务实例
func NewFileService(store storage.Store, fileRepo *repository.FileRepository, worker *async.Worker, logger *logger.Logger, maxUploadMB int64, defaultFolder string) *FileService {
	if defaultFolder == "" {
		defaultFolder = "uploads"
	}
	return &FileService{
		store:         store,
		fileRepo:      fileRepo,
		worker:        worker,
		logger:        logger,
		maxSize:       maxUploadMB * 1024 * 1024,
		defaultFolder: defaultFolder,
	}
}

// StorageKey 构造存储键：{目录}/{毫秒时间戳}_{原始文件名}
func StorageKey(folder, name string) string {
	return fmt.Sprintf("%s/%d_%s", folder, time.Now().UnixMilli(), name)
}

// Upload 上传文件并写入元数据记录。
// 超过大小上限的文件在任何远程调用之前被拒绝。该检查只是客户端
// 预检性质的使用约束，不是安全边界。
func (s *FileService) Upload(ctx context.Context, folder, name, contentType string, size int64, r io.Reader, onProgress func(int)) (*model.File, error) {
	if folder == "" {
		folder = s.defaultFolder
	}
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	key := StorageKey(folder, name)
	url, err := s.store.Upload(ctx, key, r, size, contentType, onProgress)
	if err != nil {
		s.logger.Error("上传文件失败", "key", key, "error", err)
		return nil, err
	}

	f := &model.File{
		ID:         uuid.NewString(),
		URL:        url,
		Name:       name,
		Type:       contentType,
		Size:       size,
		Path:       key,
		UploadedAt: time.Now(),
	}

	if err := s.fileRepo.Create(ctx, f); err != nil {
		// 第二步失败：Blob已在存储中，异步补偿删除
		s.logger.Error("文件元数据写入失败，尝试补偿删除Blob", "key", key, "error", err)
		s.worker.Submit(async.Task{
			ID:       "compensate_blob_" + f.ID,
			Timeout:  30 * time.Second,
			RetryMax: 2,
			Handler: func(ctx context.Context) error {
				if derr := s.store.Delete(ctx, key); derr != nil {
					// 补偿失败，存储中遗留孤立Blob
					s.logger.Error("补偿删除Blob失败，存储中遗留孤立Blob", "key", key, "error", derr)
					return derr
				}
				return nil
			},
		})
		return nil, err
	}

	return f, nil
}

// List 获取文件列表（分页），按上传时间倒序
func (s *FileService) List(ctx context.Context, page, limit int) (*model.PaginatedFiles, error) {
	total, err := s.fileRepo.Count(ctx)
	if err != nil {
		s.logger.Error("获取文件总数失败", "error", err)
		return nil, err
	}
	files, err := s.fileRepo.List(ctx, page, limit)
	if err != nil {
		s.logger.Error("获取文件列表失败", "error", err)
		return nil, err
	}
	return &model.PaginatedFiles{Total: total, Items: files}, nil
}

// Delete 删除文件：Blob与元数据两次独立调用，无论前者是否成功都尝试后者。
// 部分失败会留下孤立Blob或悬挂的元数据记录，分别单独记录日志。
func (s *FileService) Delete(ctx context.Context, id string) error {
	f, err := s.fileRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFileNotFound
	}
	if err != nil {
		return err
	}

	blobErr := s.store.Delete(ctx, f.Path)
	metaErr := s.fileRepo.Delete(ctx, id)

	switch {
	case blobErr != nil && metaErr == nil:
		s.logger.Error("Blob删除失败但元数据已删除，存储中遗留孤立Blob", "path", f.Path, "error", blobErr)
	case blobErr == nil && metaErr != nil:
		s.logger.Error("元数据删除失败但Blob已删除，留下悬挂的元数据记录", "id", id, "error", metaErr)
	case blobErr != nil && metaErr != nil:
		s.logger.Error("删除文件失败", "id", id, "path", f.Path, "blob_error", blobErr, "meta_error", metaErr)
	}

	return errors.Join(blobErr, metaErr)
}
