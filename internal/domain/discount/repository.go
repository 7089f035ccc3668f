package discount

import (
	"context"
)

// Repository 折扣码仓储接口
type Repository interface {
	// FindActiveByCode 按规范化折扣码查找启用中的折扣
	// 不存在或未启用返回ErrCodeInvalid
	FindActiveByCode(ctx context.Context, code string) (*Code, error)

	// IncrementUsage 原子递增使用次数
	// 带UsageLimit时用条件更新保证usage_count不越过上限,
	// 已达上限返回ErrUsageLimitReached
	IncrementUsage(ctx context.Context, id uint) error

	// DecrementUsage 回退使用次数(结算补偿用)
	DecrementUsage(ctx context.Context, id uint) error
}

// UsageStore 单用户使用次数计数(redis实现)
// 保证UserLimit的检查与递增不被并发结算绕过。
type UsageStore interface {
	// Get 用户对某折扣码的已用次数
	Get(ctx context.Context, codeID, userID uint) (int, error)

	// Increment 次数+1,返回递增后的值
	Increment(ctx context.Context, codeID, userID uint) (int, error)

	// Decrement 次数-1(补偿用)
	Decrement(ctx context.Context, codeID, userID uint) error
}
