// Package saga 提供带补偿的多步事务编排
//
// 把一个跨多实体的长操作拆成若干短步骤，每个步骤配一个补偿操作；
// 某一步失败时，按逆序执行已完成步骤的补偿，保证最终一致性。
// Action与Compensate都要求幂等（允许重试）。
package saga

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Step Saga中的一个步骤
// Action是正向操作（如扣减库存），Compensate是对应的补偿（如释放库存）。
// 最后一步通常无需补偿，Compensate可以为nil。
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次补偿式事务
type Saga struct {
	steps    []Step
	executed []Step // 已执行的步骤，补偿时逆序遍历
	timeout  time.Duration
}

// NewSaga 创建Saga，timeout限制整体执行时间（<=0表示不限制）
func NewSaga(timeout time.Duration) *Saga {
	return &Saga{
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 追加一个步骤，按添加顺序执行，按逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 顺序执行所有步骤；任一步失败（或整体超时）即触发补偿并返回错误
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		select {
		case <-ctx.Done():
			// 补偿用新Context，避免补偿本身也被同一个超时打断
			s.compensate(context.Background())
			return fmt.Errorf("saga timed out before step [%d:%s]: %w", i, step.Name, ctx.Err())
		default:
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.Background())
				return fmt.Errorf("saga step [%d:%s] failed: %w", i, step.Name, err)
			}
		}

		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 逆序执行已完成步骤的补偿
// 某个补偿失败时只记日志并继续（尽最大努力），需要人工介入处理残留
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]

		if step.Compensate != nil {
			if err := step.Compensate(ctx); err != nil {
				log.Printf("[saga] compensation failed for step %q: %v", step.Name, err)
			}
		}
	}

	s.executed = nil
}
