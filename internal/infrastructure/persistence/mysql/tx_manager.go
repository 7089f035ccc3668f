package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的键
type txKey struct{}

// TxManager 事务管理器
// 事务DB通过context传递,各Repository用getDB提取;
// fn返回error自动ROLLBACK,返回nil自动COMMIT。
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 在同一事务内执行fn中的全部仓储操作
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := ledger.Release(ctx, productID, variantID, qty); err != nil {
//	        return err // 回滚
//	    }
//	    return orderRepo.Update(ctx, o) // nil则提交
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// getDB 从context提取事务DB,没有事务时用默认连接
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
