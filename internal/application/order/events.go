package order

import (
	"log"
	"time"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/pkg/circuitbreaker"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// EventPublisher 消息发布接口,由pkg/mq实现
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// OrderEvent 订单事件载荷
type OrderEvent struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      uint      `json:"userId"`
	Status      string    `json:"status"`
	Total       int64     `json:"total"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderEvents 订单事件出口
// 发布是尽力而为:MQ故障不能影响主流程,由熔断器兜底。
type OrderEvents struct {
	publisher EventPublisher
	breaker   *circuitbreaker.CircuitBreaker
}

func NewOrderEvents(publisher EventPublisher) *OrderEvents {
	breaker := circuitbreaker.NewCircuitBreaker("mq_publisher", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	breaker.SetStateChangeCallback(func(_ string, from, to circuitbreaker.State) {
		log.Printf("[mq] circuit breaker %s -> %s", from, to)
		if metrics.CircuitBreakerState != nil {
			metrics.CircuitBreakerState.WithLabelValues("mq_publisher").Set(float64(to))
		}
	})
	return &OrderEvents{publisher: publisher, breaker: breaker}
}

// Created 订单创建事件 routing key: order.created
func (e *OrderEvents) Created(o *order.Order) { e.emit("order.created", o) }

// Cancelled 订单取消事件 routing key: order.cancelled
func (e *OrderEvents) Cancelled(o *order.Order) { e.emit("order.cancelled", o) }

// Refunded 订单退款事件 routing key: order.refunded
func (e *OrderEvents) Refunded(o *order.Order) { e.emit("order.refunded", o) }

// StatusChanged 履约状态推进事件 routing key: order.status_changed
func (e *OrderEvents) StatusChanged(o *order.Order) { e.emit("order.status_changed", o) }

func (e *OrderEvents) emit(routingKey string, o *order.Order) {
	if e == nil || e.publisher == nil {
		return
	}
	event := &OrderEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      string(o.Status),
		Total:       o.Total,
		Currency:    o.Currency,
		OccurredAt:  time.Now(),
	}
	err := e.breaker.Execute(func() error {
		return e.publisher.Publish(routingKey, event)
	})
	if err != nil {
		// 事件丢失只记录,不回滚业务
		log.Printf("[mq] publish %s for order %s failed: %v", routingKey, o.OrderNumber, err)
	}
}
