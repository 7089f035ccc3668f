package shipping

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 配送领域错误定义
var (
	// ErrMethodNotFound 配送方式不存在
	ErrMethodNotFound = apperrors.New(apperrors.ErrCodeShippingNotFound, "shipping method not found")

	// ErrMethodInactive 配送方式已停用
	ErrMethodInactive = apperrors.New(apperrors.ErrCodeShippingInactive, "shipping method is not active")

	// ErrCountryNotServed 不配送到该国家
	ErrCountryNotServed = apperrors.New(apperrors.ErrCodeShippingInactive, "shipping method does not serve this country")

	// ErrWeightExceeded 超出最大承运重量
	ErrWeightExceeded = apperrors.New(apperrors.ErrCodeWeightExceeded, "package weight exceeds the shipping method limit")
)
