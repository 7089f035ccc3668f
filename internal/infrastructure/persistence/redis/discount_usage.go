package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/storefront/internal/domain/discount"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// DiscountUsageStore 单用户折扣使用计数(Redis)
// INCR/DECR是原子操作,并发结算不会绕过UserLimit。
// Key设计:discount_usage:{code_id}:{user_id},不设TTL,
// 随折扣码有效期自然失去意义。
type DiscountUsageStore struct {
	client *redis.Client
}

// NewDiscountUsageStore 创建折扣使用计数存储
func NewDiscountUsageStore(client *redis.Client) discount.UsageStore {
	return &DiscountUsageStore{client: client}
}

func usageKey(codeID, userID uint) string {
	return fmt.Sprintf("discount_usage:%d:%d", codeID, userID)
}

// Get 用户对某折扣码的已用次数
func (s *DiscountUsageStore) Get(ctx context.Context, codeID, userID uint) (int, error) {
	n, err := s.client.Get(ctx, usageKey(codeID, userID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read discount usage")
	}
	return n, nil
}

// Increment 次数+1,返回递增后的值
func (s *DiscountUsageStore) Increment(ctx context.Context, codeID, userID uint) (int, error) {
	n, err := s.client.Incr(ctx, usageKey(codeID, userID)).Result()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to increment discount usage")
	}
	return int(n), nil
}

// Decrement 次数-1(补偿),不降到0以下
func (s *DiscountUsageStore) Decrement(ctx context.Context, codeID, userID uint) error {
	key := usageKey(codeID, userID)
	n, err := s.client.Decr(ctx, key).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to decrement discount usage")
	}
	if n < 0 {
		// 补偿多扣,归零兜底
		if err := s.client.Set(ctx, key, 0, 0).Err(); err != nil {
			return apperrors.Wrap(err, "failed to reset discount usage")
		}
	}
	return nil
}
