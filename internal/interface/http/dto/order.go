package dto

import (
	"time"

	"github.com/xiebiao/storefront/internal/domain/order"
)

// OrderItemResponse 订单明细
type OrderItemResponse struct {
	ID           uint   `json:"id"`
	ProductID    uint   `json:"productId"`
	VariantID    uint   `json:"variantId,omitempty"`
	ProductTitle string `json:"productTitle"`
	ProductBrand string `json:"productBrand,omitempty"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
	Subtotal     int64  `json:"subtotal"`
}

// OrderResponse 订单视图
type OrderResponse struct {
	ID                 uint                `json:"id"`
	OrderNumber        string              `json:"orderNumber"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"paymentStatus"`
	PaymentMethod      string              `json:"paymentMethod,omitempty"`
	PaymentReference   string              `json:"paymentReference,omitempty"`
	ContactEmail       string              `json:"contactEmail"`
	ContactPhone       string              `json:"contactPhone"`
	ShippingMethodName string              `json:"shippingMethodName,omitempty"`
	ShippingCost       int64               `json:"shippingCost"`
	Subtotal           int64               `json:"subtotal"`
	DiscountCode       string              `json:"discountCode,omitempty"`
	DiscountAmount     int64               `json:"discountAmount"`
	Tax                int64               `json:"tax"`
	Total              int64               `json:"total"`
	Currency           string              `json:"currency"`
	Notes              string              `json:"notes,omitempty"`
	EstimatedDelivery  *time.Time          `json:"estimatedDelivery,omitempty"`
	DisputeID          uint                `json:"disputeId,omitempty"`
	PickupReady        bool                `json:"pickupReady"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// NewOrderResponse 从领域实体构建订单视图
func NewOrderResponse(o *order.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		Status:             string(o.Status),
		PaymentStatus:      string(o.PaymentStatus),
		PaymentMethod:      o.PaymentMethod,
		PaymentReference:   o.PaymentReference,
		ContactEmail:       o.ContactEmail,
		ContactPhone:       o.ContactPhone,
		ShippingMethodName: o.ShippingMethodName,
		ShippingCost:       o.ShippingCost,
		Subtotal:           o.Subtotal,
		DiscountCode:       o.DiscountCode,
		DiscountAmount:     o.DiscountAmount,
		Tax:                o.Tax,
		Total:              o.Total,
		Currency:           o.Currency,
		Notes:              o.Notes,
		EstimatedDelivery:  o.EstimatedDelivery,
		DisputeID:          o.DisputeID,
		PickupReady:        o.PickupReady,
		Items:              make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:          o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			ProductTitle: item.ProductTitle,
			ProductBrand: item.ProductBrand,
			Size:         item.Size,
			Color:        item.Color,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Subtotal:     item.Subtotal,
		})
	}
	return resp
}

// NewOrderResponses 批量转换
func NewOrderResponses(orders []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

// TrackingResponse 物流追踪视图
type TrackingResponse struct {
	Order     *OrderResponse          `json:"order"`
	Checklist order.TrackingChecklist `json:"checklist"`
}
