package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/cart"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// GetOrCreate 查找用户购物车,不存在则创建
// 并发首次访问可能撞上user_id唯一键,冲突时改为读取已有车。
func (r *cartRepository) GetOrCreate(ctx context.Context, userID uint) (*cart.Cart, error) {
	c, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	model := &CartModel{UserID: userID}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return r.FindByUserID(ctx, userID)
		}
		return nil, apperrors.Wrap(err, "failed to create cart")
	}

	return &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// FindByUserID 查找用户购物车(含行项),不存在返回nil
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	db := getDB(ctx, r.db)

	var model CartModel
	err := db.Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to query cart")
	}

	var items []CartItemModel
	if err := db.Where("cart_id = ?", model.ID).Order("id").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to query cart items")
	}

	c := &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     make([]cart.Item, len(items)),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	for i := range items {
		c.Items[i] = toCartItemEntity(&items[i])
	}
	return c, nil
}

// FindItem 查找行项并校验归属
func (r *cartRepository) FindItem(ctx context.Context, cartID, itemID uint) (*cart.Item, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).Where("id = ? AND cart_id = ?", itemID, cartID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query cart item")
	}
	item := toCartItemEntity(&model)
	return &item, nil
}

// AddItem 新增行项
func (r *cartRepository) AddItem(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		CartID:    item.CartID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create cart item")
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// UpdateItemQuantity 更新行项数量
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	result := getDB(ctx, r.db).Model(&CartItemModel{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update cart item")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// RemoveItem 删除行项
func (r *cartRepository) RemoveItem(ctx context.Context, itemID uint) error {
	result := getDB(ctx, r.db).Delete(&CartItemModel{}, itemID)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// Clear 清空购物车
func (r *cartRepository) Clear(ctx context.Context, cartID uint) error {
	err := getDB(ctx, r.db).Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "failed to clear cart")
	}
	return nil
}

func toCartItemEntity(model *CartItemModel) cart.Item {
	return cart.Item{
		ID:        model.ID,
		CartID:    model.CartID,
		ProductID: model.ProductID,
		VariantID: model.VariantID,
		Size:      model.Size,
		Color:     model.Color,
		Quantity:  model.Quantity,
		Price:     model.Price,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
