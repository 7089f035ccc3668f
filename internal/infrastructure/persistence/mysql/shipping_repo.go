package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/shipping"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// shippingRepository 配送方式仓储实现(MySQL)
type shippingRepository struct {
	db *gorm.DB
}

// NewShippingRepository 创建配送方式仓储
func NewShippingRepository(db *gorm.DB) shipping.Repository {
	return &shippingRepository{db: db}
}

// FindByID 根据ID查找配送方式
func (r *shippingRepository) FindByID(ctx context.Context, id uint) (*shipping.Method, error) {
	var model ShippingMethodModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shipping.ErrMethodNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query shipping method")
	}
	return toShippingEntity(&model), nil
}

// ListActive 列出启用中的配送方式
// 国家过滤在内存里做:countries是JSON列,行数很小,不值得SQL化。
func (r *shippingRepository) ListActive(ctx context.Context, country string) ([]*shipping.Method, error) {
	var models []ShippingMethodModel
	err := getDB(ctx, r.db).
		Where("is_active = ?", true).
		Order("base_cost").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query shipping methods")
	}

	methods := make([]*shipping.Method, 0, len(models))
	for i := range models {
		m := toShippingEntity(&models[i])
		if country != "" && !m.ServesCountry(country) {
			continue
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func toShippingEntity(model *ShippingMethodModel) *shipping.Method {
	return &shipping.Method{
		ID:               model.ID,
		Name:             model.Name,
		Description:      model.Description,
		DeliveryTime:     model.DeliveryTime,
		DeliveryTimeDays: model.DeliveryTimeDays,
		BaseCost:         model.BaseCost,
		CostPerKg:        model.CostPerKg,
		MinOrderValue:    model.MinOrderValue,
		MaxWeight:        model.MaxWeight,
		IsActive:         model.IsActive,
		Countries:        model.Countries,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
