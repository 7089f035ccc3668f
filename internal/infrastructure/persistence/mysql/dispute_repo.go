package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/dispute"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// disputeRepository 纠纷仓储实现(MySQL)
type disputeRepository struct {
	db *gorm.DB
}

// NewDisputeRepository 创建纠纷仓储
func NewDisputeRepository(db *gorm.DB) dispute.Repository {
	return &disputeRepository{db: db}
}

// Create 创建纠纷
func (r *disputeRepository) Create(ctx context.Context, d *dispute.Dispute) error {
	model := toDisputeModel(d)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create dispute")
	}
	d.ID = model.ID
	d.CreatedAt = model.CreatedAt
	d.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找纠纷
func (r *disputeRepository) FindByID(ctx context.Context, id uint) (*dispute.Dispute, error) {
	var model DisputeModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dispute.ErrDisputeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query dispute")
	}
	return toDisputeEntity(&model), nil
}

// FindOpenByOrderID 查找订单的未结纠纷,不存在返回nil
func (r *disputeRepository) FindOpenByOrderID(ctx context.Context, orderID uint) (*dispute.Dispute, error) {
	var model DisputeModel
	err := getDB(ctx, r.db).
		Where("order_id = ? AND status IN ?", orderID,
			[]string{string(dispute.StatusPending), string(dispute.StatusUnderReview)}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to query dispute")
	}
	return toDisputeEntity(&model), nil
}

// Update 更新纠纷
func (r *disputeRepository) Update(ctx context.Context, d *dispute.Dispute) error {
	result := getDB(ctx, r.db).Model(&DisputeModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"status":         string(d.Status),
			"admin_response": d.AdminResponse,
			"refund_amount":  d.RefundAmount,
			"resolved_at":    d.ResolvedAt,
			"resolved_by":    d.ResolvedBy,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update dispute")
	}
	if result.RowsAffected == 0 {
		return dispute.ErrDisputeNotFound
	}
	return nil
}

func toDisputeModel(d *dispute.Dispute) *DisputeModel {
	return &DisputeModel{
		ID:            d.ID,
		OrderID:       d.OrderID,
		OrderItemID:   d.OrderItemID,
		UserID:        d.UserID,
		Reasons:       d.Reasons,
		Explanation:   d.Explanation,
		Status:        string(d.Status),
		AdminResponse: d.AdminResponse,
		RefundAmount:  d.RefundAmount,
		ResolvedAt:    d.ResolvedAt,
		ResolvedBy:    d.ResolvedBy,
	}
}

func toDisputeEntity(model *DisputeModel) *dispute.Dispute {
	return &dispute.Dispute{
		ID:            model.ID,
		OrderID:       model.OrderID,
		OrderItemID:   model.OrderItemID,
		UserID:        model.UserID,
		Reasons:       model.Reasons,
		Explanation:   model.Explanation,
		Status:        dispute.Status(model.Status),
		AdminResponse: model.AdminResponse,
		RefundAmount:  model.RefundAmount,
		ResolvedAt:    model.ResolvedAt,
		ResolvedBy:    model.ResolvedBy,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
