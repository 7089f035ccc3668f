package user

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/user"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Phone     string `json:"phone"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// RegisterUseCase 用户注册
type RegisterUseCase struct {
	userService user.Service
}

func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// Execute 注册新用户,邮箱重复与弱密码由领域服务拒绝
func (uc *RegisterUseCase) Execute(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Firstname, req.Lastname, req.Phone)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{
		UserID:    u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
	}, nil
}
