package order

import (
	"context"
	"strconv"

	"github.com/xiebiao/storefront/internal/domain/order"
)

// AcceptOrderUseCase 买家确认收货
// 仅delivered后允许,置位自提就绪标记并持久化。
type AcceptOrderUseCase struct {
	orderRepo order.Repository
}

func NewAcceptOrderUseCase(orderRepo order.Repository) *AcceptOrderUseCase {
	return &AcceptOrderUseCase{orderRepo: orderRepo}
}

// Execute 确认收货
func (uc *AcceptOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}
	if err := o.Accept(); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// parseID 解析路径参数中的数字ID
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
