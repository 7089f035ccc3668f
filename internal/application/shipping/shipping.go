package shipping

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/pricing"
	"github.com/xiebiao/storefront/internal/domain/shipping"
)

// CalculateRequest 运费试算请求
// Subtotal由调用方传入(kobo),weight为包裹总重(kg)。
type CalculateRequest struct {
	MethodID uint    `json:"methodId" binding:"required"`
	Subtotal int64   `json:"subtotal" binding:"min=0"`
	Weight   float64 `json:"weight" binding:"min=0"`
	Country  string  `json:"country"`
}

// CalculateResult 运费试算结果
type CalculateResult struct {
	MethodID     uint   `json:"methodId"`
	MethodName   string `json:"methodName"`
	DeliveryTime string `json:"deliveryTime"`
	Cost         int64  `json:"cost"`
	FreeShipping bool   `json:"freeShipping"`
}

// UseCase 配送方式查询与运费试算
type UseCase struct {
	shippingRepo shipping.Repository
}

func NewUseCase(shippingRepo shipping.Repository) *UseCase {
	return &UseCase{shippingRepo: shippingRepo}
}

// ListMethods 启用中的配送方式,country非空时按可达国家过滤
func (uc *UseCase) ListMethods(ctx context.Context, country string) ([]*shipping.Method, error) {
	return uc.shippingRepo.ListActive(ctx, country)
}

// Calculate 运费试算
// 与结算用同一套定价函数,保证试算结果与下单一致。
func (uc *UseCase) Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResult, error) {
	method, err := uc.shippingRepo.FindByID(ctx, req.MethodID)
	if err != nil {
		return nil, err
	}
	if !method.IsActive {
		return nil, shipping.ErrMethodInactive
	}
	if !method.ServesCountry(req.Country) {
		return nil, shipping.ErrCountryNotServed
	}

	cost, err := pricing.ShippingCost(method, req.Subtotal, req.Weight)
	if err != nil {
		return nil, err
	}
	return &CalculateResult{
		MethodID:     method.ID,
		MethodName:   method.Name,
		DeliveryTime: method.DeliveryTime,
		Cost:         cost,
		FreeShipping: cost == 0 && method.MinOrderValue > 0 && req.Subtotal >= method.MinOrderValue,
	}, nil
}
