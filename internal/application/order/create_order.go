package order

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/storefront/internal/domain/address"
	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/discount"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/pricing"
	"github.com/xiebiao/storefront/internal/domain/shipping"
	"github.com/xiebiao/storefront/internal/domain/stock"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/saga"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// CreateOrderRequest 结算请求
type CreateOrderRequest struct {
	UserID           uint
	AddressID        uint   `json:"addressId" binding:"required"`
	ShippingMethodID uint   `json:"shippingMethodId"`
	DiscountCode     string `json:"discountCode"`
	PaymentMethod    string `json:"paymentMethod"`
	Notes            string `json:"notes"`
}

// CreateOrderUseCase 结算:购物车 → 订单
//
// 流程分两段:先做纯校验与定价(无副作用),再用Saga执行带副作用的
// 步骤——逐行预占库存、登记折扣用量、落库订单、清空购物车。
// 任一步失败按逆序补偿,失败的结算不留下任何残余状态。
type CreateOrderUseCase struct {
	cartRepo      cart.Repository
	productRepo   catalog.Repository
	addressRepo   address.Repository
	shippingRepo  shipping.Repository
	discountRepo  discount.Repository
	discountUsage discount.UsageStore
	orderRepo     order.Repository
	ledger        stock.Ledger
	events        *OrderEvents
	sagaTimeout   time.Duration
}

func NewCreateOrderUseCase(
	cartRepo cart.Repository,
	productRepo catalog.Repository,
	addressRepo address.Repository,
	shippingRepo shipping.Repository,
	discountRepo discount.Repository,
	discountUsage discount.UsageStore,
	orderRepo order.Repository,
	ledger stock.Ledger,
	events *OrderEvents,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		addressRepo:   addressRepo,
		shippingRepo:  shippingRepo,
		discountRepo:  discountRepo,
		discountUsage: discountUsage,
		orderRepo:     orderRepo,
		ledger:        ledger,
		events:        events,
		sagaTimeout:   30 * time.Second,
	}
}

// checkoutLine 结算行:购物车行项解析后的定价/预占输入
type checkoutLine struct {
	productID uint
	variantID uint
	quantity  int
	pricing   pricing.Line
	item      order.Item
	currency  string
}

// Execute 执行结算
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req *CreateOrderRequest) (*order.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "storefront", "checkout")
	defer span.End()
	start := time.Now()

	o, err := uc.checkout(ctx, req)

	if metrics.CheckoutDuration != nil {
		metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	}
	if metrics.CheckoutsTotal != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.CheckoutsTotal.WithLabelValues(result).Inc()
	}
	return o, err
}

func (uc *CreateOrderUseCase) checkout(ctx context.Context, req *CreateOrderRequest) (*order.Order, error) {
	// 地址必须存在且归属当前用户,越权访问与不存在同样表现为404
	addr, err := uc.addressRepo.FindByID(ctx, req.AddressID)
	if err != nil {
		return nil, err
	}
	if !addr.IsOwnedBy(req.UserID) {
		return nil, address.ErrAddressNotFound
	}

	c, err := uc.cartRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	lines, currency, err := uc.resolveLines(ctx, c)
	if err != nil {
		return nil, err
	}

	pricingLines := make([]pricing.Line, 0, len(lines))
	categoryIDs := make([]uint, 0, len(lines))
	productIDs := make([]uint, 0, len(lines))
	for _, l := range lines {
		pricingLines = append(pricingLines, l.pricing)
		productIDs = append(productIDs, l.productID)
		if l.pricing.CategoryID != 0 {
			categoryIDs = append(categoryIDs, l.pricing.CategoryID)
		}
	}
	subtotal := pricing.Subtotal(pricingLines)

	var shippingCost int64
	var methodName string
	if req.ShippingMethodID != 0 {
		method, err := uc.shippingRepo.FindByID(ctx, req.ShippingMethodID)
		if err != nil {
			return nil, err
		}
		if !method.IsActive {
			return nil, shipping.ErrMethodInactive
		}
		if !method.ServesCountry(addr.Country) {
			return nil, shipping.ErrCountryNotServed
		}
		shippingCost, err = pricing.ShippingCost(method, subtotal, 0)
		if err != nil {
			return nil, err
		}
		methodName = method.Name
	}

	// 折扣是尽力而为:码无效/过期/不达门槛时按无折扣继续,不阻断结算
	dc, discountAmount := uc.resolveDiscount(ctx, req, subtotal, categoryIDs, productIDs)

	now := time.Now()
	draft := &order.Order{
		OrderNumber:        order.GenerateOrderNumber(),
		UserID:             req.UserID,
		AddressID:          addr.ID,
		ContactEmail:       addr.Email,
		ContactPhone:       addr.Phone,
		ShippingMethodID:   req.ShippingMethodID,
		ShippingMethodName: methodName,
		ShippingCost:       shippingCost,
		Subtotal:           subtotal,
		DiscountAmount:     discountAmount,
		Tax:                0,
		Total:              pricing.Total(subtotal, shippingCost, discountAmount, 0),
		Currency:           currency,
		Status:             order.StatusPending,
		PaymentStatus:      order.PaymentPending,
		PaymentMethod:      req.PaymentMethod,
		Notes:              req.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if dc != nil {
		draft.DiscountCode = dc.Code
	}
	for _, l := range lines {
		draft.Items = append(draft.Items, l.item)
	}

	if err := uc.runCheckoutSaga(ctx, req, draft, lines, dc); err != nil {
		if metrics.CheckoutCompensationsTotal != nil {
			metrics.CheckoutCompensationsTotal.Inc()
		}
		// HTTP层需要原始业务错误(库存不足/重复单号),剥掉saga包装
		return nil, apperrors.GetAppError(err)
	}

	if dc != nil && metrics.DiscountsAppliedTotal != nil && draft.DiscountAmount > 0 {
		metrics.DiscountsAppliedTotal.WithLabelValues(string(dc.Type)).Inc()
	}
	uc.events.Created(draft)
	return draft, nil
}

// resolveLines 把购物车行项解析为结算行,并做预检
// 真正防超卖的是账本的原子预占,这里的数量检查只为尽早失败。
func (uc *CreateOrderUseCase) resolveLines(ctx context.Context, c *cart.Cart) ([]checkoutLine, string, error) {
	lines := make([]checkoutLine, 0, len(c.Items))
	currency := "NGN"
	currencySet := false
	for _, item := range c.Items {
		p, err := uc.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, "", err
		}

		unitPrice := p.Price
		available := p.Stock
		size, color := item.Size, item.Color
		if item.VariantID != 0 {
			v, err := uc.productRepo.FindVariantByID(ctx, item.VariantID)
			if err != nil {
				return nil, "", err
			}
			if v.ProductID != p.ID {
				return nil, "", catalog.ErrVariantMismatch
			}
			unitPrice = v.EffectivePrice(p.Price)
			available = v.Stock
			size, color = v.Size, v.Color
		}
		if item.Quantity > available {
			return nil, "", apperrors.Newf(apperrors.ErrCodeInsufficientStock,
				"only %d in stock for %s", available, p.Title)
		}
		// 首行定币种,后续行不再改写
		if !currencySet && p.Currency != "" {
			currency = p.Currency
			currencySet = true
		}

		lines = append(lines, checkoutLine{
			productID: item.ProductID,
			variantID: item.VariantID,
			quantity:  item.Quantity,
			pricing: pricing.Line{
				ProductID:  item.ProductID,
				VariantID:  item.VariantID,
				CategoryID: p.CategoryID,
				UnitPrice:  unitPrice,
				Quantity:   item.Quantity,
			},
			item: order.Item{
				ProductID:    item.ProductID,
				VariantID:    item.VariantID,
				ProductTitle: p.Title,
				ProductBrand: p.Brand,
				Size:         size,
				Color:        color,
				Quantity:     item.Quantity,
				Price:        unitPrice,
				Subtotal:     unitPrice * int64(item.Quantity),
			},
		})
	}
	return lines, currency, nil
}

// resolveDiscount 折扣预校验
// 返回(nil, 0)表示不应用折扣;任何校验失败都静默降级。
func (uc *CreateOrderUseCase) resolveDiscount(ctx context.Context, req *CreateOrderRequest, subtotal int64, categoryIDs, productIDs []uint) (*discount.Code, int64) {
	if req.DiscountCode == "" {
		return nil, 0
	}

	dc, err := uc.discountRepo.FindActiveByCode(ctx, discount.Normalize(req.DiscountCode))
	if err != nil {
		log.Printf("[checkout] discount %q skipped: %v", req.DiscountCode, err)
		return nil, 0
	}
	amount, err := pricing.Discount(dc, subtotal, categoryIDs, productIDs, time.Now())
	if err != nil {
		log.Printf("[checkout] discount %q skipped: %v", dc.Code, err)
		return nil, 0
	}
	if dc.UserLimit > 0 {
		used, err := uc.discountUsage.Get(ctx, dc.ID, req.UserID)
		if err != nil || used >= dc.UserLimit {
			log.Printf("[checkout] discount %q skipped for user %d: used=%d err=%v", dc.Code, req.UserID, used, err)
			return nil, 0
		}
	}
	return dc, amount
}

// runCheckoutSaga 执行带副作用的结算步骤
// 每个购物车行是独立的预占步骤,后续行失败时前面的行按逆序释放。
func (uc *CreateOrderUseCase) runCheckoutSaga(ctx context.Context, req *CreateOrderRequest, draft *order.Order, lines []checkoutLine, dc *discount.Code) error {
	sg := saga.NewSaga(uc.sagaTimeout)

	for _, l := range lines {
		l := l
		sg.AddStep("reserve stock",
			func(ctx context.Context) error {
				err := uc.ledger.Reserve(ctx, l.productID, l.variantID, l.quantity)
				if err != nil && metrics.StockReservationFailures != nil {
					if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code == apperrors.ErrCodeInsufficientStock {
						metrics.StockReservationFailures.Inc()
					}
				}
				return err
			},
			func(ctx context.Context) error {
				return uc.ledger.Release(ctx, l.productID, l.variantID, l.quantity)
			},
		)
	}

	if dc != nil {
		var dbIncremented, userIncremented bool
		sg.AddStep("register discount usage",
			func(ctx context.Context) error {
				if err := uc.discountRepo.IncrementUsage(ctx, dc.ID); err != nil {
					// 预校验后被并发用完:降级为无折扣继续,而不是让结算失败
					if isDiscountRejection(err) {
						uc.stripDiscount(draft)
						return nil
					}
					return err
				}
				dbIncremented = true

				if dc.UserLimit > 0 {
					n, err := uc.discountUsage.Increment(ctx, dc.ID, req.UserID)
					if err != nil {
						_ = uc.discountRepo.DecrementUsage(ctx, dc.ID)
						dbIncremented = false
						uc.stripDiscount(draft)
						return nil
					}
					if n > dc.UserLimit {
						_ = uc.discountUsage.Decrement(ctx, dc.ID, req.UserID)
						_ = uc.discountRepo.DecrementUsage(ctx, dc.ID)
						dbIncremented = false
						uc.stripDiscount(draft)
						return nil
					}
					userIncremented = true
				}
				return nil
			},
			func(ctx context.Context) error {
				if userIncremented {
					_ = uc.discountUsage.Decrement(ctx, dc.ID, req.UserID)
				}
				if dbIncremented {
					return uc.discountRepo.DecrementUsage(ctx, dc.ID)
				}
				return nil
			},
		)
	}

	sg.AddStep("persist order",
		func(ctx context.Context) error {
			return uc.orderRepo.Create(ctx, draft)
		},
		func(ctx context.Context) error {
			if draft.ID == 0 {
				return nil
			}
			return uc.orderRepo.Delete(ctx, draft.ID)
		},
	)

	// 清空购物车放最后且不设补偿:到这一步订单已成立,
	// 清空失败只记日志,不值得为此回滚整单
	sg.AddStep("clear cart",
		func(ctx context.Context) error {
			c, err := uc.cartRepo.FindByUserID(ctx, req.UserID)
			if err != nil || c == nil {
				if err != nil {
					log.Printf("[checkout] clear cart for user %d failed: %v", req.UserID, err)
				}
				return nil
			}
			if err := uc.cartRepo.Clear(ctx, c.ID); err != nil {
				log.Printf("[checkout] clear cart for user %d failed: %v", req.UserID, err)
			}
			return nil
		},
		nil,
	)

	return sg.Execute(ctx)
}

// stripDiscount 去掉折扣并重算总价
func (uc *CreateOrderUseCase) stripDiscount(draft *order.Order) {
	draft.DiscountCode = ""
	draft.DiscountAmount = 0
	draft.Total = pricing.Total(draft.Subtotal, draft.ShippingCost, 0, draft.Tax)
}

// isDiscountRejection 判断是否为折扣业务拒绝(而非基础设施错误)
func isDiscountRejection(err error) bool {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		return false
	}
	switch appErr.Code {
	case apperrors.ErrCodeDiscountInvalid, apperrors.ErrCodeDiscountExpired,
		apperrors.ErrCodeDiscountUsedUp, apperrors.ErrCodeBelowMinimum,
		apperrors.ErrCodeNotApplicable:
		return true
	}
	return false
}
