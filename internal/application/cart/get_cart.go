package cart

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// GetCartUseCase 查询购物车快照
type GetCartUseCase struct {
	cartRepo    cart.Repository
	productRepo catalog.Repository
}

func NewGetCartUseCase(cartRepo cart.Repository, productRepo catalog.Repository) *GetCartUseCase {
	return &GetCartUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// Execute 返回用户购物车的当前快照,无购物车时返回空快照
func (uc *GetCartUseCase) Execute(ctx context.Context, userID uint) (*Snapshot, error) {
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(ctx, uc.productRepo, c)
}
