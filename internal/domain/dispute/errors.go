package dispute

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 纠纷领域错误定义
var (
	// ErrDisputeNotFound 纠纷不存在
	ErrDisputeNotFound = apperrors.New(apperrors.ErrCodeDisputeNotFound, "dispute not found")

	// ErrInvalidStatus 非法的纠纷状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "invalid dispute status")

	// ErrDuplicateDispute 订单已有未结纠纷
	ErrDuplicateDispute = apperrors.New(apperrors.ErrCodeDuplicateEntry, "order already has an open dispute")
)
