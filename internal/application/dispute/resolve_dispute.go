package dispute

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/dispute"
	"github.com/xiebiao/storefront/internal/domain/order"
)

// ResolveDisputeRequest 管理员裁定纠纷
type ResolveDisputeRequest struct {
	DisputeID     uint
	AdminID       uint
	Status        string `json:"status" binding:"required"`
	AdminResponse string `json:"adminResponse"`
	RefundAmount  int64  `json:"refundAmount"`
}

// TxRunner 事务执行接口,由mysql.TxManager实现
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderEvents 退款联动时通知订单事件出口
type OrderEvents interface {
	Refunded(o *order.Order)
}

// ResolveDisputeUseCase 纠纷裁定
// 裁定为refunded时,订单状态与支付状态在同一事务里强制置为refunded。
type ResolveDisputeUseCase struct {
	disputeRepo dispute.Repository
	orderRepo   order.Repository
	tx          TxRunner
	events      OrderEvents
}

func NewResolveDisputeUseCase(disputeRepo dispute.Repository, orderRepo order.Repository, tx TxRunner, events OrderEvents) *ResolveDisputeUseCase {
	return &ResolveDisputeUseCase{disputeRepo: disputeRepo, orderRepo: orderRepo, tx: tx, events: events}
}

// Execute 裁定纠纷
func (uc *ResolveDisputeUseCase) Execute(ctx context.Context, req *ResolveDisputeRequest) (*dispute.Dispute, error) {
	d, err := uc.disputeRepo.FindByID(ctx, req.DisputeID)
	if err != nil {
		return nil, err
	}
	if err := d.Resolve(dispute.Status(req.Status), req.AdminResponse, req.RefundAmount, req.AdminID); err != nil {
		return nil, err
	}

	if d.Status != dispute.StatusRefunded {
		if err := uc.disputeRepo.Update(ctx, d); err != nil {
			return nil, err
		}
		return d, nil
	}

	o, err := uc.orderRepo.FindByID(ctx, d.OrderID)
	if err != nil {
		return nil, err
	}
	o.ForceRefund()

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.disputeRepo.Update(ctx, d); err != nil {
			return err
		}
		return uc.orderRepo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		uc.events.Refunded(o)
	}
	return d, nil
}
