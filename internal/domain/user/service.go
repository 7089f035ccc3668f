package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// Service 用户领域服务
// 封装不属于单个实体的逻辑:密码加密与验证、注册校验。
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, email, password, firstname, lastname, phone string) (*User, error)

	// Login 用户登录
	Login(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 邮箱格式、密码强度在这里校验;邮箱唯一性由数据库UNIQUE索引兜底。
func (s *service) Register(ctx context.Context, email, password, firstname, lastname, phone string) (*User, error) {
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "invalid email address")
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}
	if firstname == "" || lastname == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "first name and last name are required")
	}

	// bcrypt自动加盐,cost=12平衡安全与耗时
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	u := NewUser(email, string(hashedPassword), firstname, lastname, phone)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 用户登录
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "failed to verify password")
	}
	return u, nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validatePasswordStrength 密码8-64位,至少包含一个字母和一个数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 64 {
		return apperrors.New(apperrors.ErrCodeWeakPassword, "password must be 8-64 characters")
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.New(apperrors.ErrCodeWeakPassword, "password must contain both letters and digits")
	}
	return nil
}
