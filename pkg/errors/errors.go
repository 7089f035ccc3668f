package errors

import (
	"errors"
	"fmt"
)

// AppError 应用错误
// 设计说明：
// 1. Code是业务错误码，客户端据此判断错误类型
// 2. Message面向用户，可直接返回
// 3. Err是内部原因，只进日志，不序列化（防止泄露内部细节）
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（数据库、Redis、MQ等），统一转为内部错误
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx/409xx: 客户端错误（参数、业务规则）
// - 401xx: 认证授权错误
// - 404xx: 资源不存在
// - 5xxxx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002
	ErrCodeMQError       = 50003

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100
	ErrCodeInvalidToken    = 40101
	ErrCodeTokenExpired    = 40102
	ErrCodeInvalidPassword = 40103
	ErrCodeForbidden       = 40104

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400
	ErrCodeUserNotFound     = 40401
	ErrCodeProductNotFound  = 40402
	ErrCodeOrderNotFound    = 40403
	ErrCodeVariantNotFound  = 40404
	ErrCodeCartItemNotFound = 40405
	ErrCodeAddressNotFound  = 40406
	ErrCodeShippingNotFound = 40407
	ErrCodeDisputeNotFound  = 40408

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000
	ErrCodeInsufficientStock = 40001
	ErrCodeInvalidTransition = 40002
	ErrCodeEmailDuplicate    = 40003
	ErrCodeEmptyCart         = 40004
	ErrCodeWeakPassword      = 40005
	ErrCodeShippingInactive  = 40006
	ErrCodeWeightExceeded    = 40007
	ErrCodeDuplicateEntry    = 40009
	ErrCodeDiscountInvalid   = 40010
	ErrCodeDiscountExpired   = 40011
	ErrCodeDiscountUsedUp    = 40012
	ErrCodeBelowMinimum      = 40013
	ErrCodeNotApplicable     = 40014

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900
	ErrCodeBindError     = 40901
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "database error")
	ErrRedisError    = New(ErrCodeRedisError, "cache service error")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "authentication required")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "invalid token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "token expired")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "incorrect password")
	ErrForbidden       = New(ErrCodeForbidden, "access denied")

	// 资源不存在
	ErrUserNotFound = New(ErrCodeUserNotFound, "user not found")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "malformed request body")
)

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（非AppError则包装为内部错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}
