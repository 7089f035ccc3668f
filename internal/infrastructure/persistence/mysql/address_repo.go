package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/address"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// addressRepository 地址仓储实现(MySQL)
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) address.Repository {
	return &addressRepository{db: db}
}

// FindByID 根据ID查找地址
func (r *addressRepository) FindByID(ctx context.Context, id uint) (*address.Address, error) {
	var model AddressModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, address.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query address")
	}
	return toAddressEntity(&model), nil
}

// ListByUserID 用户的全部地址
func (r *addressRepository) ListByUserID(ctx context.Context, userID uint) ([]*address.Address, error) {
	var models []AddressModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("is_default DESC, id").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query addresses")
	}

	addresses := make([]*address.Address, len(models))
	for i := range models {
		addresses[i] = toAddressEntity(&models[i])
	}
	return addresses, nil
}

func toAddressEntity(model *AddressModel) *address.Address {
	return &address.Address{
		ID:         model.ID,
		UserID:     model.UserID,
		Title:      model.Title,
		Firstname:  model.Firstname,
		Lastname:   model.Lastname,
		Email:      model.Email,
		Phone:      model.Phone,
		Country:    model.Country,
		Region:     model.Region,
		City:       model.City,
		Street:     model.Street,
		PostalCode: model.PostalCode,
		IsDefault:  model.IsDefault,
		Type:       model.Type,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
