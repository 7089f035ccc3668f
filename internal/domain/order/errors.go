package order

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "order not found")

	// ErrInvalidTransition 当前状态不允许此操作
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "order status does not allow this operation")

	// ErrNotDelivered 订单尚未送达,不能确认收货
	ErrNotDelivered = apperrors.New(apperrors.ErrCodeInvalidTransition, "order has not been delivered yet")

	// ErrInvalidStatus 非法状态值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "invalid order status")

	// ErrDuplicateOrderNumber 订单号冲突(重试一次后仍冲突)
	ErrDuplicateOrderNumber = apperrors.New(apperrors.ErrCodeInternal, "failed to allocate a unique order number")
)
