package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"classboard/internal/model"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("user not found")

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByToken(ctx context.Context, token string) (*model.User, error)
	UpdateToken(ctx context.Context, id int64, token string) error
}

// userRepository 用户仓库实现
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password, group_id, status, token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.Password, user.GroupID, user.Status, user.Token)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "SELECT * FROM users WHERE id = ?", id)
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "SELECT * FROM users WHERE username = ?", username)
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "SELECT * FROM users WHERE email = ?", email)
}

// GetByToken 根据Token获取用户。空Token永远不匹配（登出后Token被清空）。
func (r *userRepository) GetByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUserNotFound
	}
	return r.getOne(ctx, "SELECT * FROM users WHERE token = ?", token)
}

// UpdateToken 更新用户Token
func (r *userRepository) UpdateToken(ctx context.Context, id int64, token string) error {
	query := "UPDATE users SET token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, token, id)
	return err
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := r.db.GetContext(ctx, user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
