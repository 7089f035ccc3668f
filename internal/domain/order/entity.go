package order

import (
	"time"
)

// Status 订单状态
// 主干:pending → confirmed → processing → shipped → delivered
// 侧枝:cancelled(仅pending/confirmed可达)、refunded(纠纷退款,终态)
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// statusRank 主干状态的单调序;侧枝不在序内
var statusRank = map[Status]int{
	StatusPending:    1,
	StatusConfirmed:  2,
	StatusProcessing: 3,
	StatusShipped:    4,
	StatusDelivered:  5,
}

// Valid 是否为合法状态值
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// PaymentStatus 支付状态,与订单状态正交
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid 是否为合法支付状态值
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Order 订单实体(聚合根)
// 由结算流程一次性创建,此后只允许状态字段变化;
// 金额与联系方式是创建时刻的快照,不随地址/商品的后续修改回溯变化。
// 不变式:Total == Subtotal + ShippingCost − DiscountAmount + Tax,创建时冻结。
type Order struct {
	ID                 uint
	OrderNumber        string // 业务主键,全局唯一
	UserID             uint
	AddressID          uint
	ContactEmail       string // 从地址复制,非引用
	ContactPhone       string
	ShippingMethodID   uint
	ShippingMethodName string // 从配送方式复制
	ShippingCost       int64
	Subtotal           int64
	DiscountCode       string
	DiscountAmount     int64
	Tax                int64 // 恒为0,税费计算不在范围内
	Total              int64
	Currency           string
	Status             Status
	PaymentStatus      PaymentStatus
	PaymentMethod      string
	PaymentReference   string
	Notes              string
	EstimatedDelivery  *time.Time
	DisputeID          uint // 0表示无纠纷
	PickupReady        bool // delivered后由买家确认收货置位
	PickupReadyAt      *time.Time
	Items              []Item
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Item 订单明细,创建时从购物车行项整体快照,之后不可变
// 商品标题/品牌/价格都是下单时刻的副本,商品后续改动或删除不影响历史订单。
type Item struct {
	ID           uint
	OrderID      uint
	ProductID    uint
	VariantID    uint
	ProductTitle string
	ProductBrand string
	Size         string
	Color        string
	Quantity     int
	Price        int64 // 下单时单价
	Subtotal     int64 // Price × Quantity
}

// TrackingChecklist 派生的物流里程碑,按状态计算
type TrackingChecklist struct {
	Packaging      bool `json:"packaging"`      // confirmed及之后
	Checking       bool `json:"checking"`       // processing及之后
	Shipping       bool `json:"shipping"`       // shipped及之后
	Delivery       bool `json:"delivery"`       // delivered
	ReadyForPickup bool `json:"readyForPickup"` // 买家确认收货
}

// CanCancel 仅pending/confirmed可取消
func (o *Order) CanCancel() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// Cancel 取消订单;库存回补由调用方通过账本完成
func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return ErrInvalidTransition
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// CanAdvanceTo 管理员推进状态:只允许沿主干向前,允许跳级
// (pending直接到delivered是合法操作,这是有意的设计选择)
func (o *Order) CanAdvanceTo(target Status) bool {
	from, okFrom := statusRank[o.Status]
	to, okTo := statusRank[target]
	if !okFrom || !okTo {
		return false
	}
	return to > from
}

// AdvanceTo 推进到目标状态
func (o *Order) AdvanceTo(target Status) error {
	if !o.CanAdvanceTo(target) {
		return ErrInvalidTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Accept 买家确认收货,仅delivered后允许
func (o *Order) Accept() error {
	if o.Status != StatusDelivered {
		return ErrNotDelivered
	}
	now := time.Now()
	o.PickupReady = true
	o.PickupReadyAt = &now
	o.UpdatedAt = now
	return nil
}

// ForceRefund 纠纷裁定退款:订单状态与支付状态同时置为refunded
func (o *Order) ForceRefund() {
	o.Status = StatusRefunded
	o.PaymentStatus = PaymentRefunded
	o.UpdatedAt = time.Now()
}

// Checklist 计算物流里程碑
// 已确认收货的订单转入退款后里程碑不回退
func (o *Order) Checklist() TrackingChecklist {
	rank := statusRank[o.Status]
	if o.PickupReady && rank < statusRank[StatusDelivered] {
		rank = statusRank[StatusDelivered]
	}
	return TrackingChecklist{
		Packaging:      rank >= statusRank[StatusConfirmed],
		Checking:       rank >= statusRank[StatusProcessing],
		Shipping:       rank >= statusRank[StatusShipped],
		Delivery:       rank >= statusRank[StatusDelivered],
		ReadyForPickup: o.PickupReady,
	}
}

// IsOwnedBy 归属校验,防止访问他人订单
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
