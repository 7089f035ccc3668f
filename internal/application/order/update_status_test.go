package order

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/domain/order"
)

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakePublisher) Publish(routingKey string, _ interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, routingKey)
	return nil
}

func (f *fakePublisher) published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

func TestUpdateStatus_AdvanceEmitsEvent(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(context.Background(), &order.Order{UserID: 7, Status: order.StatusPending}))
	publisher := &fakePublisher{}
	uc := NewUpdateStatusUseCase(repo, NewOrderEvents(publisher))

	o, err := uc.Execute(context.Background(), &UpdateStatusRequest{OrderID: 1, Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, o.Status)
	assert.Equal(t, []string{"order.status_changed"}, publisher.published())

	// 只改支付状态不产生履约事件
	_, err = uc.Execute(context.Background(), &UpdateStatusRequest{OrderID: 1, PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"order.status_changed"}, publisher.published())
}

func TestUpdateStatus_BackwardsRejected(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(context.Background(), &order.Order{UserID: 7, Status: order.StatusShipped}))
	uc := NewUpdateStatusUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &UpdateStatusRequest{OrderID: 1, Status: "pending"})
	assert.Error(t, err)
}
