package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/util/rand"

	"classboard/internal/model"
	"classboard/internal/repository"
	"classboard/pkg/logger"
)

// 用户服务错误
var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrUsernameExists    = errors.New("用户名已存在")
	ErrEmailExists       = errors.New("该邮箱已被注册")
	ErrTooFrequent       = errors.New("请求过于频繁，请稍后重试")
)

// UserService 用户服务：注册、登录、登出与Token校验
type UserService struct {
	userRepo    repository.UserRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewUserService 创建用户服务实例
func NewUserService(userRepo repository.UserRepository, redisClient *redis.Client, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Register 注册新用户。注册锁防止同一邮箱的并发重复注册。
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	lockKey := "user_register:" + email
	lock := s.redisClient.SetNX(ctx, lockKey, "1", 10*time.Second)
	if !lock.Val() {
		return nil, ErrTooFrequent
	}
	defer s.redisClient.Del(ctx, lockKey)

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameExists
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		GroupID:  model.GroupMember,
		Status:   model.StatusNormal,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", "username", username, "error", err)
		return nil, err
	}
	return user, nil
}

// Login 登录，支持用户名或邮箱。会话Token在首次登录时生成。
func (s *UserService) Login(ctx context.Context, identifier, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrUserNotFound) {
		user, err = s.userRepo.GetByEmail(ctx, identifier)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrPasswordIncorrect
	}

	if user.Token == "" {
		user.Token = rand.String(32)
		if err := s.userRepo.UpdateToken(ctx, user.ID, user.Token); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Logout 登出，清空会话Token
func (s *UserService) Logout(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrUserNotFound) {
		// 会话本就不存在，视为已登出
		return nil
	}
	if err != nil {
		return err
	}
	return s.userRepo.UpdateToken(ctx, user.ID, "")
}

// GetByToken 根据会话Token获取用户
func (s *UserService) GetByToken(ctx context.Context, token string) (*model.User, error) {
	user, err := s.userRepo.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
