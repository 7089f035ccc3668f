package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// GetOrCreate 查找用户购物车,不存在则创建空车(幂等)
	GetOrCreate(ctx context.Context, userID uint) (*Cart, error)

	// FindByUserID 查找用户购物车(含行项),不存在返回nil
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// FindItem 查找行项并校验归属购物车
	FindItem(ctx context.Context, cartID, itemID uint) (*Item, error)

	// AddItem 新增行项
	AddItem(ctx context.Context, item *Item) error

	// UpdateItemQuantity 更新行项数量
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error

	// RemoveItem 删除行项
	RemoveItem(ctx context.Context, itemID uint) error

	// Clear 清空购物车的全部行项
	Clear(ctx context.Context, cartID uint) error
}
