package dispute

import (
	"time"
)

// Status 纠纷状态
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusResolved    Status = "resolved"
	StatusRejected    Status = "rejected"
	StatusRefunded    Status = "refunded" // 裁定退款,联动订单状态
)

// Valid 是否为合法状态值
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusResolved, StatusRejected, StatusRefunded:
		return true
	}
	return false
}

// Dispute 订单纠纷实体
// 纠纷可挂在任意状态的订单上;裁定为refunded时,
// 订单的status和paymentStatus被同步强制为refunded。
type Dispute struct {
	ID            uint
	OrderID       uint
	OrderItemID   uint // 0表示针对整单
	UserID        uint
	Reasons       []string
	Explanation   string
	Status        Status
	AdminResponse string
	RefundAmount  int64
	ResolvedAt    *time.Time
	ResolvedBy    uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Resolve 管理员裁定
func (d *Dispute) Resolve(status Status, adminResponse string, refundAmount int64, adminID uint) error {
	if !status.Valid() || status == StatusPending {
		return ErrInvalidStatus
	}
	now := time.Now()
	d.Status = status
	d.AdminResponse = adminResponse
	d.RefundAmount = refundAmount
	d.ResolvedBy = adminID
	if status != StatusUnderReview {
		d.ResolvedAt = &now
	}
	d.UpdatedAt = now
	return nil
}
