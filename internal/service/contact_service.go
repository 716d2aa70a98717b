package service

import (
	"context"

	"classboard/internal/model"
	"classboard/internal/repository"
	"classboard/pkg/async"
	"classboard/pkg/email"
	"classboard/pkg/logger"
)

// ContactService 联系表单服务：留言落库，并异步给站点管理员发通知邮件
type ContactService struct {
	contactRepo  *repository.ContactRepository
	emailService *email.Service
	worker       *async.Worker
	logger       *logger.Logger
	siteName     string
	notifyTo     string
}

// NewContactService 创建联系表单服务实例
func NewContactService(contactRepo *repository.ContactRepository, emailService *email.Service, worker *async.Worker, logger *logger.Logger, siteName, notifyTo string) *ContactService {
	return &ContactService{
		contactRepo:  contactRepo,
		emailService: emailService,
		worker:       worker,
		logger:       logger,
		siteName:     siteName,
		notifyTo:     notifyTo,
	}
}

// Submit 保存留言并异步发送通知邮件。邮件失败不影响留言结果。
func (s *ContactService) Submit(ctx context.Context, m *model.ContactMessage) error {
	if err := s.contactRepo.Create(ctx, m); err != nil {
		s.logger.Error("保存留言失败", "error", err)
		return err
	}

	if s.notifyTo != "" {
		data := email.ContactData{
			SiteName: s.siteName,
			Name:     m.Name,
			Email:    m.Email,
			Subject:  m.Subject,
			Message:  m.Message,
		}
		s.worker.AddTask(func() {
			if err := s.emailService.SendContactNotification(s.notifyTo, data); err != nil {
				s.logger.Error("发送留言通知邮件失败", "error", err)
			}
		})
	}
	return nil
}

// List 获取留言列表（管理端）
func (s *ContactService) List(ctx context.Context, page, limit int) ([]model.ContactMessage, int64, error) {
	total, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	messages, err := s.contactRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
