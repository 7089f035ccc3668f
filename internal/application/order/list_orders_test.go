package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/pkg/response"
)

// 非法分页参数要在用例层归一化,响应回显的是实际生效值,
// 不能把原始的0透传给分页计算。
func TestListOrders_PagingNormalized(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(context.Background(), &order.Order{UserID: 7, Status: order.StatusPending}))
	uc := NewListOrdersUseCase(repo)

	result, err := uc.ListByUser(context.Background(), 7, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	assert.NotPanics(t, func() {
		response.NewPageData(result.Orders, result.Total, result.Page, result.PageSize)
	})

	adminResult, err := uc.ListAll(context.Background(), order.ListFilter{Page: -1, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, adminResult.Page)
	assert.Equal(t, 20, adminResult.PageSize)
}

func TestListOrders_UnknownStatusRejected(t *testing.T) {
	uc := NewListOrdersUseCase(newFakeOrderRepo())

	_, err := uc.ListByUser(context.Background(), 7, "nonsense", 1, 20)
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}
