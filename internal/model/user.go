package model

import "time"

// 用户组
const (
	GroupMember int64 = 1 // 普通成员
	GroupAdmin  int64 = 2 // 管理员，可访问内容管理接口
)

// 用户状态
const (
	StatusNormal   = 1
	StatusDisabled = 0
)

// User 用户模型
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	GroupID   int64     `db:"group_id" json:"group_id"`
	Status    int       `db:"status" json:"status"`
	Token     string    `db:"token" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.GroupID == GroupAdmin
}
