package cart

import (
	"time"
)

// Cart 购物车实体(聚合根)
// 每个用户至多一个购物车,首次访问时惰性创建。
type Cart struct {
	ID        uint
	UserID    uint
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item 购物车行项
// (CartID, ProductID, VariantID)唯一:重复加购合并数量而不是新增行。
// Price是加购时捕获的单价,仅用于展示;结算时以当前价格重新定价。
type Item struct {
	ID        uint
	CartID    uint
	ProductID uint
	VariantID uint   // 0表示无变体
	Size      string // 旧客户端的回退字段,无variantId时用于匹配变体
	Color     string
	Quantity  int
	Price     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindLine 按(商品,变体)查找已有行项,用于加购合并
func (c *Cart) FindLine(productID, variantID uint) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].VariantID == variantID {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// UnitCount 全部行项的件数之和
func (c *Cart) UnitCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
