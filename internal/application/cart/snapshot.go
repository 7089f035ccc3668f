package cart

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// Line 购物车快照行:按当前价格与库存渲染
type Line struct {
	ItemID    uint   `json:"itemId"`
	ProductID uint   `json:"productId"`
	VariantID uint   `json:"variantId,omitempty"`
	Title     string `json:"title"`
	Brand     string `json:"brand,omitempty"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
	Available int    `json:"available"`
}

// Snapshot 购物车读模型
// 这是定价与结算消费的输入:行项+小计+行数/件数。
type Snapshot struct {
	CartID    uint   `json:"cartId"`
	Lines     []Line `json:"items"`
	Subtotal  int64  `json:"subtotal"`
	ItemCount int    `json:"itemCount"`
	UnitCount int    `json:"unitCount"`
	Currency  string `json:"currency"`
}

// resolved 行项解析结果:变体覆盖商品的价格与库存
type resolved struct {
	product   *catalog.Product
	variant   *catalog.Variant // nil表示无变体
	unitPrice int64
	available int
}

// resolveLine 解析行项当前的有效价格与可售库存
func resolveLine(ctx context.Context, products catalog.Repository, productID, variantID uint) (*resolved, error) {
	p, err := products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	r := &resolved{product: p, unitPrice: p.Price, available: p.Stock}
	if variantID != 0 {
		v, err := products.FindVariantByID(ctx, variantID)
		if err != nil {
			return nil, err
		}
		if v.ProductID != p.ID {
			return nil, catalog.ErrVariantMismatch
		}
		r.variant = v
		r.unitPrice = v.EffectivePrice(p.Price)
		r.available = v.Stock
	}
	return r, nil
}

// buildSnapshot 从购物车实体渲染快照
func buildSnapshot(ctx context.Context, products catalog.Repository, c *cart.Cart) (*Snapshot, error) {
	snap := &Snapshot{
		CartID:   c.ID,
		Lines:    make([]Line, 0, len(c.Items)),
		Currency: "NGN",
	}

	currencySet := false
	for _, item := range c.Items {
		r, err := resolveLine(ctx, products, item.ProductID, item.VariantID)
		if err != nil {
			return nil, err
		}

		line := Line{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Title:     r.product.Title,
			Brand:     r.product.Brand,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: r.unitPrice,
			Quantity:  item.Quantity,
			Subtotal:  r.unitPrice * int64(item.Quantity),
			Available: r.available,
		}
		if r.variant != nil {
			line.Size = r.variant.Size
			line.Color = r.variant.Color
		}
		// 首行定币种,后续行不再改写
		if !currencySet && r.product.Currency != "" {
			snap.Currency = r.product.Currency
			currencySet = true
		}

		snap.Lines = append(snap.Lines, line)
		snap.Subtotal += line.Subtotal
		snap.UnitCount += item.Quantity
	}
	snap.ItemCount = len(snap.Lines)
	return snap, nil
}
