package dispute

import (
	"context"
	"time"

	"github.com/xiebiao/storefront/internal/domain/dispute"
	"github.com/xiebiao/storefront/internal/domain/order"
)

// OpenDisputeRequest 买家发起纠纷
type OpenDisputeRequest struct {
	UserID      uint
	OrderID     uint     `json:"orderId" binding:"required"`
	OrderItemID uint     `json:"orderItemId"`
	Reasons     []string `json:"reasons" binding:"required,min=1"`
	Explanation string   `json:"explanation"`
}

// OpenDisputeUseCase 发起纠纷
// 同一订单同时只允许一条未结纠纷;纠纷ID回写到订单上。
type OpenDisputeUseCase struct {
	disputeRepo dispute.Repository
	orderRepo   order.Repository
}

func NewOpenDisputeUseCase(disputeRepo dispute.Repository, orderRepo order.Repository) *OpenDisputeUseCase {
	return &OpenDisputeUseCase{disputeRepo: disputeRepo, orderRepo: orderRepo}
}

// Execute 发起纠纷
func (uc *OpenDisputeUseCase) Execute(ctx context.Context, req *OpenDisputeRequest) (*dispute.Dispute, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(req.UserID) {
		return nil, order.ErrOrderNotFound
	}

	open, err := uc.disputeRepo.FindOpenByOrderID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, dispute.ErrDuplicateDispute
	}

	now := time.Now()
	d := &dispute.Dispute{
		OrderID:     o.ID,
		OrderItemID: req.OrderItemID,
		UserID:      req.UserID,
		Reasons:     req.Reasons,
		Explanation: req.Explanation,
		Status:      dispute.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.disputeRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	o.DisputeID = d.ID
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return d, nil
}
