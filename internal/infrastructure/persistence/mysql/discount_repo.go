package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/discount"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// discountRepository 折扣码仓储实现(MySQL)
type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣码仓储
func NewDiscountRepository(db *gorm.DB) discount.Repository {
	return &discountRepository{db: db}
}

// FindActiveByCode 按规范化折扣码查找启用中的折扣
func (r *discountRepository) FindActiveByCode(ctx context.Context, code string) (*discount.Code, error) {
	var model DiscountCodeModel
	err := getDB(ctx, r.db).
		Where("code = ? AND is_active = ?", discount.Normalize(code), true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, discount.ErrCodeInvalid
		}
		return nil, apperrors.Wrap(err, "failed to query discount code")
	}
	return toDiscountEntity(&model), nil
}

// IncrementUsage 原子递增使用次数
// 条件UPDATE保证带上限的码不会被并发结算冲过上限:
//
//	UPDATE discount_codes SET usage_count = usage_count + 1
//	WHERE id = ? AND (usage_limit = 0 OR usage_count < usage_limit)
func (r *discountRepository) IncrementUsage(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&DiscountCodeModel{}).
		Where("id = ?", id).
		Where("usage_limit = 0 OR usage_count < usage_limit").
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to increment discount usage")
	}
	if result.RowsAffected == 0 {
		var model DiscountCodeModel
		if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return discount.ErrCodeInvalid
			}
			return apperrors.Wrap(err, "failed to query discount code")
		}
		return discount.ErrUsageLimitReached
	}
	return nil
}

// DecrementUsage 回退使用次数(结算补偿),不降到0以下
func (r *discountRepository) DecrementUsage(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Model(&DiscountCodeModel{}).
		Where("id = ? AND usage_count > 0", id).
		Update("usage_count", gorm.Expr("usage_count - 1")).Error
	if err != nil {
		return apperrors.Wrap(err, "failed to decrement discount usage")
	}
	return nil
}

func toDiscountEntity(model *DiscountCodeModel) *discount.Code {
	return &discount.Code{
		ID:            model.ID,
		Code:          model.Code,
		Description:   model.Description,
		Type:          discount.Type(model.Type),
		Value:         model.Value,
		MinOrderValue: model.MinOrderValue,
		MaxDiscount:   model.MaxDiscount,
		ValidFrom:     model.ValidFrom,
		ValidUntil:    model.ValidUntil,
		IsActive:      model.IsActive,
		UsageLimit:    model.UsageLimit,
		UsageCount:    model.UsageCount,
		UserLimit:     model.UserLimit,
		CategoryIDs:   model.CategoryIDs,
		ProductIDs:    model.ProductIDs,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
