package catalog

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置:domain定义,infrastructure实现)
// 库存字段的写入不走这里,统一由stock.Ledger负责。
type Repository interface {
	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindVariantByID 根据ID查找变体
	FindVariantByID(ctx context.Context, variantID uint) (*Variant, error)

	// FindVariant 按(商品,尺寸,颜色)查找变体,用于无variantId的旧客户端
	FindVariant(ctx context.Context, productID uint, size, color string) (*Variant, error)

	// ListVariants 列出商品的全部变体
	ListVariants(ctx context.Context, productID uint) ([]*Variant, error)
}
