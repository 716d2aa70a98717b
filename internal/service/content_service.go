package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"classboard/internal/content"
	"classboard/internal/model"
	"classboard/internal/repository"
	"classboard/pkg/logger"
)

// ErrContentNotFound 内容在目标集合中不存在。
// 编辑时集合由调用方传入的上下文重新推导，若记录不在推导出的集合里，
// 更新会以该错误拒绝，绝不会写到别的集合去。
var ErrContentNotFound = errors.New("内容不存在")

// ContentService 内容服务：路由、校验、持久化与列表缓存
type ContentService struct {
	repos       map[string]*repository.ContentRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewContentService 创建内容服务实例，三个集合各对应一个存储库
func NewContentService(newsRepo, announcementRepo, adminRepo *repository.ContentRepository, redisClient *redis.Client, logger *logger.Logger) *ContentService {
	repos := map[string]*repository.ContentRepository{
		newsRepo.Collection():         newsRepo,
		announcementRepo.Collection(): announcementRepo,
		adminRepo.Collection():        adminRepo,
	}
	return &ContentService{
		repos:       repos,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *ContentService) repo(collection string) (*repository.ContentRepository, error) {
	r, ok := s.repos[collection]
	if !ok {
		return nil, fmt.Errorf("未知的集合: %q", collection)
	}
	return r, nil
}

// Create 创建内容：校验→路由→裁剪→写入。校验失败时不发生任何写入。
// 返回新记录及其归属的集合。
func (s *ContentService) Create(ctx context.Context, kind content.Kind, ctxSubType content.SubType, in content.Input) (*model.Content, string, error) {
	subType, err := content.EffectiveSubType(ctxSubType, in)
	if err != nil {
		return nil, "", err
	}
	collection, err := content.Resolve(kind, subType)
	if err != nil {
		return nil, "", err
	}
	rec, err := content.Record(collection, in)
	if err != nil {
		return nil, "", err
	}

	repo, err := s.repo(collection)
	if err != nil {
		return nil, "", err
	}
	if err := repo.Create(ctx, rec); err != nil {
		s.logger.Error("创建内容失败", "collection", collection, "error", err)
		return nil, "", err
	}

	s.invalidateCache(ctx, collection)
	return rec, collection, nil
}

// Update 更新内容。集合由编辑时的上下文推导（公告子类型在创建后不可变更，
// 表单提交的announcement_type在此被忽略），并要求记录确实存在于该集合。
func (s *ContentService) Update(ctx context.Context, kind content.Kind, ctxSubType content.SubType, id int64, in content.Input) (*model.Content, error) {
	collection, err := content.Resolve(kind, ctxSubType)
	if err != nil {
		return nil, err
	}
	repo, err := s.repo(collection)
	if err != nil {
		return nil, err
	}

	existing, err := repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		// 记录不在上下文推导出的集合里：拒绝而非迁移
		s.logger.Warn("编辑目标不在推导出的集合中，已拒绝", "collection", collection, "id", id)
		return nil, ErrContentNotFound
	}
	if err != nil {
		s.logger.Error("获取待更新内容失败", "collection", collection, "id", id, "error", err)
		return nil, err
	}

	rec, err := content.Record(collection, in)
	if err != nil {
		return nil, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt

	if err := repo.Update(ctx, rec); err != nil {
		s.logger.Error("更新内容失败", "collection", collection, "id", id, "error", err)
		return nil, err
	}

	s.invalidateCache(ctx, collection)
	return rec, nil
}

// Delete 删除内容
func (s *ContentService) Delete(ctx context.Context, kind content.Kind, ctxSubType content.SubType, id int64) error {
	collection, err := content.Resolve(kind, ctxSubType)
	if err != nil {
		return err
	}
	repo, err := s.repo(collection)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		s.logger.Error("删除内容失败", "collection", collection, "id", id, "error", err)
		return err
	}
	s.invalidateCache(ctx, collection)
	return nil
}

// GetPublishedByID 获取单条已发布内容（公开端）
func (s *ContentService) GetPublishedByID(ctx context.Context, collection string, id int64) (*model.Content, error) {
	repo, err := s.repo(collection)
	if err != nil {
		return nil, err
	}
	rec, err := repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !rec.IsPublished {
		// 未发布内容对公开端不可见
		return nil, ErrContentNotFound
	}
	return rec, nil
}

// GetByIDAdmin 获取单条内容（管理端，含未发布）
func (s *ContentService) GetByIDAdmin(ctx context.Context, collection string, id int64) (*model.Content, error) {
	repo, err := s.repo(collection)
	if err != nil {
		return nil, err
	}
	rec, err := repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContentNotFound
	}
	return rec, err
}

// ListPublished 获取已发布内容列表（公开端），按发布日期倒序，带缓存
func (s *ContentService) ListPublished(ctx context.Context, collection string, page, limit int) (*model.PaginatedContent, error) {
	cacheKey := fmt.Sprintf("content:%s:list:%d:%d", collection, page, limit)
	if cached, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
		var result model.PaginatedContent
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
	}

	repo, err := s.repo(collection)
	if err != nil {
		return nil, err
	}
	total, err := repo.CountPublished(ctx)
	if err != nil {
		s.logger.Error("获取内容总数失败", "collection", collection, "error", err)
		return nil, err
	}
	items, err := repo.ListPublished(ctx, page, limit)
	if err != nil {
		s.logger.Error("获取内容列表失败", "collection", collection, "error", err)
		return nil, err
	}

	result := &model.PaginatedContent{Total: total, Items: items}
	if data, err := json.Marshal(result); err == nil {
		s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
	}
	return result, nil
}

// ListAllAdmin 获取全部内容列表（管理端，含未发布），不走缓存
func (s *ContentService) ListAllAdmin(ctx context.Context, collection string, page, limit int) (*model.PaginatedContent, error) {
	repo, err := s.repo(collection)
	if err != nil {
		return nil, err
	}
	total, err := repo.CountAll(ctx)
	if err != nil {
		s.logger.Error("获取内容总数失败", "collection", collection, "error", err)
		return nil, err
	}
	items, err := repo.ListAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("获取内容列表失败", "collection", collection, "error", err)
		return nil, err
	}
	return &model.PaginatedContent{Total: total, Items: items}, nil
}

// invalidateCache 使某个集合的列表缓存失效
func (s *ContentService) invalidateCache(ctx context.Context, collection string) {
	pattern := fmt.Sprintf("content:%s:*", collection)
	iter := s.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Error("删除缓存失败", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("扫描缓存失败", "pattern", pattern, "error", err)
	}
}
