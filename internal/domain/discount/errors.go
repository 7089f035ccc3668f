package discount

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 折扣领域错误定义
// 结算流程把这些错误统一降级为"不使用折扣",
// 校验接口(/discounts/validate)则原样返回。
var (
	// ErrCodeInvalid 折扣码不存在或未启用
	ErrCodeInvalid = apperrors.New(apperrors.ErrCodeDiscountInvalid, "invalid discount code")

	// ErrCodeExpired 不在有效期内
	ErrCodeExpired = apperrors.New(apperrors.ErrCodeDiscountExpired, "discount code expired")

	// ErrUsageLimitReached 总使用次数已达上限
	ErrUsageLimitReached = apperrors.New(apperrors.ErrCodeDiscountUsedUp, "discount code usage limit reached")

	// ErrUserLimitReached 单用户使用次数已达上限
	ErrUserLimitReached = apperrors.New(apperrors.ErrCodeDiscountUsedUp, "discount code usage limit reached for this user")

	// ErrBelowMinimum 小计未达最低消费
	ErrBelowMinimum = apperrors.New(apperrors.ErrCodeBelowMinimum, "order subtotal below discount minimum")

	// ErrNotApplicable 购物车中没有符合允许清单的商品
	ErrNotApplicable = apperrors.New(apperrors.ErrCodeNotApplicable, "discount code not applicable to these items")
)
