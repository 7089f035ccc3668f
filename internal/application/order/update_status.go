package order

import (
	"context"
	"time"

	"github.com/xiebiao/storefront/internal/domain/order"
)

// UpdateStatusRequest 管理员更新订单状态
// 三个字段都可选,至少传一个;status只能沿主干向前推进(允许跳级)。
type UpdateStatusRequest struct {
	OrderID           uint
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"paymentStatus"`
	PaymentReference  string     `json:"paymentReference"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

// UpdateStatusUseCase 管理员履约推进
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	events    *OrderEvents
}

func NewUpdateStatusUseCase(orderRepo order.Repository, events *OrderEvents) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo, events: events}
}

// Execute 更新状态,非法值与倒退均拒绝
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req *UpdateStatusRequest) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if req.Status != "" {
		target := order.Status(req.Status)
		if !target.Valid() {
			return nil, order.ErrInvalidStatus
		}
		if err := o.AdvanceTo(target); err != nil {
			return nil, err
		}
		statusChanged = true
	}
	if req.PaymentStatus != "" {
		ps := order.PaymentStatus(req.PaymentStatus)
		if !ps.Valid() {
			return nil, order.ErrInvalidStatus
		}
		o.PaymentStatus = ps
	}
	if req.PaymentReference != "" {
		o.PaymentReference = req.PaymentReference
	}
	if req.EstimatedDelivery != nil {
		o.EstimatedDelivery = req.EstimatedDelivery
	}
	o.UpdatedAt = time.Now()

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if statusChanged {
		uc.events.StatusChanged(o)
	}
	return o, nil
}
