package cart

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// AddItemRequest 加购请求
// VariantID优先;未传时按size/color匹配变体(兼容旧客户端)。
type AddItemRequest struct {
	UserID    uint
	ProductID uint   `json:"productId" binding:"required"`
	VariantID uint   `json:"variantId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AddItemUseCase 加入购物车
type AddItemUseCase struct {
	cartRepo    cart.Repository
	productRepo catalog.Repository
}

func NewAddItemUseCase(cartRepo cart.Repository, productRepo catalog.Repository) *AddItemUseCase {
	return &AddItemUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// Execute 加购:同一(商品,变体)合并数量,库存校验按合并后的总量
// 这里的库存校验是预检,真正的扣减发生在结算预占。
func (uc *AddItemUseCase) Execute(ctx context.Context, req *AddItemRequest) (*Snapshot, error) {
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	p, err := uc.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	variantID := req.VariantID
	available := p.Stock
	unitPrice := p.Price
	size, color := req.Size, req.Color
	if variantID != 0 {
		v, err := uc.productRepo.FindVariantByID(ctx, variantID)
		if err != nil {
			return nil, err
		}
		if v.ProductID != p.ID {
			return nil, catalog.ErrVariantMismatch
		}
		available = v.Stock
		unitPrice = v.EffectivePrice(p.Price)
		size, color = v.Size, v.Color
	} else if p.HasVariants && (size != "" || color != "") {
		v, err := uc.productRepo.FindVariant(ctx, p.ID, size, color)
		if err != nil {
			return nil, err
		}
		variantID = v.ID
		available = v.Stock
		unitPrice = v.EffectivePrice(p.Price)
		size, color = v.Size, v.Color
	}

	c, err := uc.cartRepo.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 合并已有行后的总量不能超过可售库存
	quantity := req.Quantity
	existing := c.FindLine(req.ProductID, variantID)
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > available {
		return nil, apperrors.Newf(apperrors.ErrCodeInsufficientStock, "only %d in stock for %s", available, p.Title)
	}

	if existing != nil {
		if err := uc.cartRepo.UpdateItemQuantity(ctx, existing.ID, quantity); err != nil {
			return nil, err
		}
	} else {
		item := &cart.Item{
			CartID:    c.ID,
			ProductID: req.ProductID,
			VariantID: variantID,
			Size:      size,
			Color:     color,
			Quantity:  quantity,
			Price:     unitPrice,
		}
		if err := uc.cartRepo.AddItem(ctx, item); err != nil {
			return nil, err
		}
	}

	c, err = uc.cartRepo.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(ctx, uc.productRepo, c)
}
