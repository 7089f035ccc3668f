package order

import (
	"context"
	"strings"

	"github.com/xiebiao/storefront/internal/domain/order"
)

// TrackingResult 物流追踪视图
type TrackingResult struct {
	Order     *order.Order            `json:"order"`
	Checklist order.TrackingChecklist `json:"checklist"`
}

// TrackOrderUseCase 订单物流追踪
// 支持数字ID或订单号("ORD-"前缀)两种定位方式。
type TrackOrderUseCase struct {
	orderRepo order.Repository
}

func NewTrackOrderUseCase(orderRepo order.Repository) *TrackOrderUseCase {
	return &TrackOrderUseCase{orderRepo: orderRepo}
}

// Execute 按归属校验后返回订单及其派生里程碑
func (uc *TrackOrderUseCase) Execute(ctx context.Context, userID uint, ref string) (*TrackingResult, error) {
	o, err := uc.find(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}
	return &TrackingResult{Order: o, Checklist: o.Checklist()}, nil
}

func (uc *TrackOrderUseCase) find(ctx context.Context, ref string) (*order.Order, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(strings.ToUpper(ref), "ORD-") {
		return uc.orderRepo.FindByOrderNumber(ctx, strings.ToUpper(ref))
	}
	id, err := parseID(ref)
	if err != nil {
		return nil, order.ErrOrderNotFound
	}
	return uc.orderRepo.FindByID(ctx, id)
}
