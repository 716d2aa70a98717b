package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"classboard/internal/model"
	"classboard/internal/repository"
	"classboard/pkg/logger"
)

// memUserRepo 内存用户存储，测试用
type memUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*model.User{}, nextID: 1}
}

func (r *memUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) GetByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, repository.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.Token == token {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) UpdateToken(ctx context.Context, id int64, token string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Token = token
	return nil
}

func newUserServiceForTest(t *testing.T) (*UserService, *memUserRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := newMemUserRepo()
	return NewUserService(repo, redisClient, logger.NewLogger("error")), repo, mr
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "zhangsan", "zs@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.GroupMember, user.GroupID)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))

	// 用户名登录
	got, err := svc.Login(ctx, "zhangsan", "secret123")
	require.NoError(t, err)
	assert.Len(t, got.Token, 32)

	// 邮箱登录复用同一Token
	again, err := svc.Login(ctx, "zs@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, got.Token, again.Token)

	_, err = svc.Login(ctx, "zhangsan", "wrong")
	require.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Login(ctx, "nobody", "secret123")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_RegisterDuplicates(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "zhangsan", "zs@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "zhangsan", "other@example.com", "secret123")
	require.ErrorIs(t, err, ErrUsernameExists)

	_, err = svc.Register(ctx, "lisi", "zs@example.com", "secret123")
	require.ErrorIs(t, err, ErrEmailExists)
}

// 注册锁存在期间同一邮箱的再次注册被拒绝
func TestUserService_RegisterLockBlocksConcurrentAttempts(t *testing.T) {
	svc, _, mr := newUserServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("user_register:zs@example.com", "1"))

	_, err := svc.Register(ctx, "zhangsan", "zs@example.com", "secret123")
	require.ErrorIs(t, err, ErrTooFrequent)
}

func TestUserService_LogoutClearsToken(t *testing.T) {
	svc, repo, _ := newUserServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "zhangsan", "zs@example.com", "secret123")
	require.NoError(t, err)
	user, err := svc.Login(ctx, "zhangsan", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.Token))
	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Token)

	// 会话已不存在时登出是幂等的
	require.NoError(t, svc.Logout(ctx, "no-such-token"))
}
