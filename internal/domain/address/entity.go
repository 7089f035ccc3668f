package address

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// Address 收货地址实体
// 对结算流程来说只是快照来源:下单时把联系邮箱/电话复制进订单,
// 之后修改地址不回溯影响已生成的订单。
type Address struct {
	ID         uint
	UserID     uint
	Title      string
	Firstname  string
	Lastname   string
	Email      string
	Phone      string
	Country    string
	Region     string
	City       string
	Street     string
	PostalCode string
	IsDefault  bool
	Type       string // home/office
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOwnedBy 归属校验
func (a *Address) IsOwnedBy(userID uint) bool {
	return a.UserID == userID
}

// Repository 地址仓储接口
type Repository interface {
	// FindByID 根据ID查找地址
	FindByID(ctx context.Context, id uint) (*Address, error)

	// ListByUserID 用户的全部地址
	ListByUserID(ctx context.Context, userID uint) ([]*Address, error)
}

// ErrAddressNotFound 地址不存在(或不属于请求用户,对外同样表现为404)
var ErrAddressNotFound = apperrors.New(apperrors.ErrCodeAddressNotFound, "address not found")
