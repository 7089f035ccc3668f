package catalog

import (
	"time"
)

// Product 商品实体(聚合根)
// 价格使用int64存储最小货币单位(kobo),避免浮点精度问题。
// HasVariants为true时,Stock是各变体库存之和的派生镜像,
// 变体库存才是权威值;镜像只允许库存账本同步更新。
type Product struct {
	ID          uint
	Title       string
	Brand       string
	Description string
	Price       int64  // 基准价(kobo)
	Currency    string // 货币代码,默认NGN
	Stock       int    // 聚合库存(有变体时为派生镜像)
	HasVariants bool
	SalesCount  int // 累计销量
	CategoryID  uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant 商品变体(尺寸/颜色组合)
// (ProductID, Size, Color)唯一;Stock是该组合的权威库存。
type Variant struct {
	ID        uint
	ProductID uint
	Size      string
	Color     string
	ColorCode string
	Price     int64 // 0表示沿用商品基准价
	Stock     int
	SKU       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectivePrice 变体的有效单价:有覆盖价取覆盖价,否则取基准价
func (v *Variant) EffectivePrice(basePrice int64) int64 {
	if v.Price > 0 {
		return v.Price
	}
	return basePrice
}

// Matches 检查变体是否匹配指定的尺寸/颜色组合
func (v *Variant) Matches(size, color string) bool {
	return v.Size == size && v.Color == color
}
