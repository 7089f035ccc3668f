package order

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/stock"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// TxRunner 事务执行接口,由mysql.TxManager实现
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CancelOrderUseCase 买家取消订单
//
// 仅pending/confirmed可取消。状态翻转与逐行库存回补在同一个
// 数据库事务里完成,部分回补的中间态对外不可见。
type CancelOrderUseCase struct {
	orderRepo order.Repository
	ledger    stock.Ledger
	tx        TxRunner
	events    *OrderEvents
}

func NewCancelOrderUseCase(orderRepo order.Repository, ledger stock.Ledger, tx TxRunner, events *OrderEvents) *CancelOrderUseCase {
	return &CancelOrderUseCase{orderRepo: orderRepo, ledger: ledger, tx: tx, events: events}
}

// Execute 取消订单并回补库存
func (uc *CancelOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, item := range o.Items {
			if err := uc.ledger.Release(ctx, item.ProductID, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}
		return uc.orderRepo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	if metrics.OrdersCancelledTotal != nil {
		metrics.OrdersCancelledTotal.Inc()
	}
	uc.events.Cancelled(o)
	return o, nil
}
