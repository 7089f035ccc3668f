package order

import (
	"context"
)

// UserListFilter 买家侧订单筛选
// Statuses为空表示全部;DisputedOnly只看挂了纠纷的订单。
type UserListFilter struct {
	Statuses     []Status
	DisputedOnly bool
	Page         int
	PageSize     int
}

// ListFilter 管理端订单筛选
type ListFilter struct {
	Status        Status
	PaymentStatus PaymentStatus
	Search        string // 匹配订单号/联系邮箱
	Page          int
	PageSize      int
}

// Repository 订单仓储接口
// 订单与明细在同一事务中写入;事务通过context传递。
type Repository interface {
	// Create 创建订单(含明细)
	// 订单号唯一键冲突时由实现换号重试一次
	Create(ctx context.Context, o *Order) error

	// Delete 删除订单及其明细(结算补偿用)
	Delete(ctx context.Context, id uint) error

	// FindByID 根据ID查找订单(含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNumber 根据订单号查找订单(含明细)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// Update 更新订单(状态字段)
	Update(ctx context.Context, o *Order) error

	// ListByUserID 用户订单分页列表
	ListByUserID(ctx context.Context, userID uint, filter UserListFilter) ([]*Order, int64, error)

	// List 管理端订单分页列表
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)
}
