package cart

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// UpdateItemRequest 修改行项数量
type UpdateItemRequest struct {
	UserID   uint
	ItemID   uint
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// UpdateItemUseCase 修改购物车行项数量
type UpdateItemUseCase struct {
	cartRepo    cart.Repository
	productRepo catalog.Repository
}

func NewUpdateItemUseCase(cartRepo cart.Repository, productRepo catalog.Repository) *UpdateItemUseCase {
	return &UpdateItemUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// Execute 数量必须为正;超出当前可售库存时拒绝
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req *UpdateItemRequest) (*Snapshot, error) {
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	c, err := uc.cartRepo.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	item, err := uc.cartRepo.FindItem(ctx, c.ID, req.ItemID)
	if err != nil {
		return nil, err
	}

	r, err := resolveLine(ctx, uc.productRepo, item.ProductID, item.VariantID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > r.available {
		return nil, apperrors.Newf(apperrors.ErrCodeInsufficientStock, "only %d in stock for %s", r.available, r.product.Title)
	}

	if err := uc.cartRepo.UpdateItemQuantity(ctx, item.ID, req.Quantity); err != nil {
		return nil, err
	}

	c, err = uc.cartRepo.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(ctx, uc.productRepo, c)
}
