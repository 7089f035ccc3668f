package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User 用户实体(聚合根)
// 密码只存bcrypt哈希,实体不暴露明文。
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希
	Firstname string
	Lastname  string
	Phone     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法),hashedPassword必须已经过bcrypt加密
func NewUser(email, hashedPassword, firstname, lastname, phone string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Firstname: firstname,
		Lastname:  lastname,
		Phone:     phone,
		Role:      RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
