package catalog

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "product not found")

	// ErrVariantNotFound 变体不存在
	ErrVariantNotFound = apperrors.New(apperrors.ErrCodeVariantNotFound, "product variant not found")

	// ErrVariantMismatch 变体不属于该商品
	ErrVariantMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "variant does not belong to this product")
)
