package shipping

import (
	"context"
)

// Repository 配送方式仓储接口
type Repository interface {
	// FindByID 根据ID查找配送方式
	FindByID(ctx context.Context, id uint) (*Method, error)

	// ListActive 列出启用中的配送方式,country非空时按国家过滤
	ListActive(ctx context.Context, country string) ([]*Method, error)
}
