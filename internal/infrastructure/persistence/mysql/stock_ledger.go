package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/stock"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// stockLedger 库存账本实现(MySQL)
// 检查与扣减是同一条条件UPDATE:
//
//	UPDATE ... SET stock = stock - ? WHERE id = ? AND stock >= ?
//
// RowsAffected == 0时回查一次区分"不存在"与"库存不足"。
// 指定变体时变体行是权威闸口,商品聚合镜像与销量在同一事务内调整。
type stockLedger struct {
	db *gorm.DB
}

// NewStockLedger 创建库存账本
func NewStockLedger(db *gorm.DB) stock.Ledger {
	return &stockLedger{db: db}
}

// Reserve 预留库存
func (l *stockLedger) Reserve(ctx context.Context, productID, variantID uint, qty int) error {
	if qty <= 0 {
		return stock.ErrInvalidQuantity
	}
	return l.run(ctx, func(ctx context.Context) error {
		return l.adjust(ctx, productID, variantID, -qty)
	})
}

// Release 释放库存
func (l *stockLedger) Release(ctx context.Context, productID, variantID uint, qty int) error {
	if qty <= 0 {
		return stock.ErrInvalidQuantity
	}
	return l.run(ctx, func(ctx context.Context) error {
		return l.adjust(ctx, productID, variantID, qty)
	})
}

// run 保证变体与聚合镜像在同一事务内调整
// 已在外层事务中时直接复用,否则开启自己的事务。
func (l *stockLedger) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// adjust delta<0为预留(条件扣减),delta>0为释放
// 销量与库存反向:预留qty件即销量+qty。
func (l *stockLedger) adjust(ctx context.Context, productID, variantID uint, delta int) error {
	db := getDB(ctx, l.db)

	if variantID != 0 {
		// 变体是权威闸口
		result := db.Model(&VariantModel{}).
			Where("id = ? AND product_id = ?", variantID, productID).
			Where("stock + ? >= 0", delta).
			Update("stock", gorm.Expr("stock + ?", delta))
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "failed to update variant stock")
		}
		if result.RowsAffected == 0 {
			return l.explainVariantFailure(ctx, productID, variantID)
		}

		// 聚合镜像与销量跟随变体,变体已扣成功,这里不再设条件
		result = db.Model(&ProductModel{}).
			Where("id = ?", productID).
			Updates(map[string]interface{}{
				"stock":       gorm.Expr("stock + ?", delta),
				"sales_count": gorm.Expr("sales_count - ?", delta),
			})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "failed to update product stock mirror")
		}
		if result.RowsAffected == 0 {
			return catalog.ErrProductNotFound
		}
		return nil
	}

	// 无变体:商品行自身是闸口
	result := db.Model(&ProductModel{}).
		Where("id = ?", productID).
		Where("stock + ? >= 0", delta).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock + ?", delta),
			"sales_count": gorm.Expr("sales_count - ?", delta),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update product stock")
	}
	if result.RowsAffected == 0 {
		var model ProductModel
		if err := db.First(&model, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrProductNotFound
			}
			return apperrors.Wrap(err, "failed to query product")
		}
		return stock.ErrInsufficientStock
	}
	return nil
}

// explainVariantFailure 条件更新没命中行:回查区分原因
func (l *stockLedger) explainVariantFailure(ctx context.Context, productID, variantID uint) error {
	db := getDB(ctx, l.db)
	var model VariantModel
	err := db.Where("id = ? AND product_id = ?", variantID, productID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.ErrVariantNotFound
		}
		return apperrors.Wrap(err, "failed to query variant")
	}
	return stock.ErrInsufficientStock
}
