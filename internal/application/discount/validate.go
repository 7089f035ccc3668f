package discount

import (
	"context"
	"time"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/discount"
	"github.com/xiebiao/storefront/internal/domain/pricing"
)

// ValidateRequest 折扣码校验请求
type ValidateRequest struct {
	UserID uint
	Code   string `json:"code" binding:"required"`
}

// ValidateResult 折扣码校验结果
type ValidateResult struct {
	Code           string `json:"code"`
	Type           string `json:"type"`
	Description    string `json:"description"`
	Subtotal       int64  `json:"subtotal"`
	DiscountAmount int64  `json:"discountAmount"`
	NewTotal       int64  `json:"newTotal"` // 仅小计减折扣,不含运费
}

// ValidateUseCase 结算前的折扣码校验
//
// 与结算时的静默降级不同,这里把具体的拒绝原因返回给买家:
// 码无效、已过期、次数用尽、不满足最低消费、商品不适用。
type ValidateUseCase struct {
	cartRepo     cart.Repository
	productRepo  catalog.Repository
	discountRepo discount.Repository
	usageStore   discount.UsageStore
}

func NewValidateUseCase(cartRepo cart.Repository, productRepo catalog.Repository, discountRepo discount.Repository, usageStore discount.UsageStore) *ValidateUseCase {
	return &ValidateUseCase{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		usageStore:   usageStore,
	}
}

// Execute 校验折扣码对当前购物车的适用性
func (uc *ValidateUseCase) Execute(ctx context.Context, req *ValidateRequest) (*ValidateResult, error) {
	c, err := uc.cartRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	var subtotal int64
	categoryIDs := make([]uint, 0, len(c.Items))
	productIDs := make([]uint, 0, len(c.Items))
	for _, item := range c.Items {
		p, err := uc.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice := p.Price
		if item.VariantID != 0 {
			v, err := uc.productRepo.FindVariantByID(ctx, item.VariantID)
			if err != nil {
				return nil, err
			}
			unitPrice = v.EffectivePrice(p.Price)
		}
		subtotal += unitPrice * int64(item.Quantity)
		productIDs = append(productIDs, p.ID)
		if p.CategoryID != 0 {
			categoryIDs = append(categoryIDs, p.CategoryID)
		}
	}

	dc, err := uc.discountRepo.FindActiveByCode(ctx, discount.Normalize(req.Code))
	if err != nil {
		return nil, err
	}
	amount, err := pricing.Discount(dc, subtotal, categoryIDs, productIDs, time.Now())
	if err != nil {
		return nil, err
	}
	if dc.UserLimit > 0 {
		used, err := uc.usageStore.Get(ctx, dc.ID, req.UserID)
		if err != nil {
			return nil, err
		}
		if used >= dc.UserLimit {
			return nil, discount.ErrUserLimitReached
		}
	}

	return &ValidateResult{
		Code:           dc.Code,
		Type:           string(dc.Type),
		Description:    dc.Description,
		Subtotal:       subtotal,
		DiscountAmount: amount,
		NewTotal:       subtotal - amount,
	}, nil
}
