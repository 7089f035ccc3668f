package cart

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrItemNotFound 购物车行项不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "cart item not found")

	// ErrEmptyCart 购物车为空,不能结算
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "cart is empty")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "quantity must be greater than zero")
)
