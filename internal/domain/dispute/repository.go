package dispute

import (
	"context"
)

// Repository 纠纷仓储接口
type Repository interface {
	// Create 创建纠纷
	Create(ctx context.Context, d *Dispute) error

	// FindByID 根据ID查找纠纷
	FindByID(ctx context.Context, id uint) (*Dispute, error)

	// FindOpenByOrderID 查找订单的未结纠纷(pending/under_review)
	FindOpenByOrderID(ctx context.Context, orderID uint) (*Dispute, error)

	// Update 更新纠纷(裁定结果)
	Update(ctx context.Context, d *Dispute) error
}
