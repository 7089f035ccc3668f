// Package pricing 结算定价的纯函数集
//
// 无持久化、无副作用,输入相同则输出相同。计算顺序固定为
// 小计 → 运费 → 折扣 → 税:百分比折扣只作用于小计,不作用于运费。
package pricing

import (
	"time"

	"github.com/xiebiao/storefront/internal/domain/discount"
	"github.com/xiebiao/storefront/internal/domain/shipping"
)

// Line 定价输入行:单价为变体覆盖价或商品基准价
type Line struct {
	ProductID  uint
	VariantID  uint
	CategoryID uint
	UnitPrice  int64
	Quantity   int
}

// LineSubtotal 单行小计
func (l Line) LineSubtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Subtotal 全部行的小计之和
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.LineSubtotal()
	}
	return sum
}

// ShippingCost 计算运费
// 小计达到免运费门槛时为0,否则 baseCost + costPerKg × weight。
// weight超过MaxWeight(设置时)返回ErrWeightExceeded。
func ShippingCost(method *shipping.Method, subtotal int64, weight float64) (int64, error) {
	if method.MaxWeight > 0 && weight > method.MaxWeight {
		return 0, shipping.ErrWeightExceeded
	}
	if method.MinOrderValue > 0 && subtotal >= method.MinOrderValue {
		return 0, nil
	}
	return method.BaseCost + int64(float64(method.CostPerKg)*weight), nil
}

// Discount 计算折扣金额
// 校验顺序:启用 → 有效期 → 总次数 → 最低消费 → 允许清单。
// percentage按小计取百分比,MaxDiscount设置时封顶;
// fixed直接取Value,但钳制到小计以内,避免负总价。
func Discount(code *discount.Code, subtotal int64, categoryIDs, productIDs []uint, now time.Time) (int64, error) {
	if code == nil || !code.IsActive {
		return 0, discount.ErrCodeInvalid
	}
	if !code.InWindow(now) {
		return 0, discount.ErrCodeExpired
	}
	if code.UsedUp() {
		return 0, discount.ErrUsageLimitReached
	}
	if subtotal < code.MinOrderValue {
		return 0, discount.ErrBelowMinimum
	}
	if !applicable(code, categoryIDs, productIDs) {
		return 0, discount.ErrNotApplicable
	}

	var amount int64
	switch code.Type {
	case discount.TypePercentage:
		amount = subtotal * code.Value / 100
		if code.MaxDiscount > 0 && amount > code.MaxDiscount {
			amount = code.MaxDiscount
		}
	case discount.TypeFixed:
		amount = code.Value
	default:
		return 0, discount.ErrCodeInvalid
	}

	if amount > subtotal {
		amount = subtotal
	}
	return amount, nil
}

// applicable 允许清单非空时,购物车必须至少命中一个清单项
func applicable(code *discount.Code, categoryIDs, productIDs []uint) bool {
	if len(code.CategoryIDs) == 0 && len(code.ProductIDs) == 0 {
		return true
	}
	if intersects(code.CategoryIDs, categoryIDs) {
		return true
	}
	return intersects(code.ProductIDs, productIDs)
}

func intersects(a, b []uint) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Total 订单总价
// 与Order实体的冻结不变式一致:subtotal + shipping − discount + tax
func Total(subtotal, shippingCost, discountAmount, tax int64) int64 {
	return subtotal + shippingCost - discountAmount + tax
}
