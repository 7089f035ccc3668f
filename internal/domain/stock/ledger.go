// Package stock 定义库存账本接口
//
// 账本是Stock和SalesCount的唯一写入者:任何其他组件都不得直接
// 修改这两个字段。检查与扣减必须是同一个原子条件更新,
// 读后写的拆分会在并发结算下超卖。
package stock

import (
	"context"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// Ledger 库存账本
// variantID != 0时变体库存为权威值,商品聚合库存作为派生镜像
// 在同一事务内同步调整。
type Ledger interface {
	// Reserve 预留库存:原子条件扣减qty并将销量+qty
	// 库存不足返回ErrInsufficientStock,且不产生任何扣减
	Reserve(ctx context.Context, productID, variantID uint, qty int) error

	// Release 释放库存:加回qty并将销量-qty,用于取消订单
	Release(ctx context.Context, productID, variantID uint, qty int) error
}

// 库存领域错误定义
var (
	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "insufficient stock")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "quantity must be greater than zero")
)
