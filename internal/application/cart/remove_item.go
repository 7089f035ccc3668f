package cart

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// RemoveItemUseCase 移除购物车行项/清空购物车
type RemoveItemUseCase struct {
	cartRepo    cart.Repository
	productRepo catalog.Repository
}

func NewRemoveItemUseCase(cartRepo cart.Repository, productRepo catalog.Repository) *RemoveItemUseCase {
	return &RemoveItemUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// Execute 移除单行,行不存在时返回404
func (uc *RemoveItemUseCase) Execute(ctx context.Context, userID, itemID uint) (*Snapshot, error) {
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := uc.cartRepo.FindItem(ctx, c.ID, itemID)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.RemoveItem(ctx, item.ID); err != nil {
		return nil, err
	}

	c, err = uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(ctx, uc.productRepo, c)
}

// Clear 清空购物车,幂等
func (uc *RemoveItemUseCase) Clear(ctx context.Context, userID uint) error {
	c, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}
	return uc.cartRepo.Clear(ctx, c.ID)
}
