package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Cancel(t *testing.T) {
	tests := []struct {
		status  Status
		wantErr bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusProcessing, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{StatusRefunded, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			o := &Order{Status: tt.status}
			err := o.Cancel()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.status, o.Status, "failed cancel must not change status")
			} else {
				require.NoError(t, err)
				assert.Equal(t, StatusCancelled, o.Status)
			}
		})
	}
}

func TestOrder_AdvanceTo(t *testing.T) {
	t.Run("forward step", func(t *testing.T) {
		o := &Order{Status: StatusPending}
		require.NoError(t, o.AdvanceTo(StatusConfirmed))
		assert.Equal(t, StatusConfirmed, o.Status)
	})

	t.Run("skip-ahead allowed", func(t *testing.T) {
		o := &Order{Status: StatusPending}
		require.NoError(t, o.AdvanceTo(StatusDelivered))
		assert.Equal(t, StatusDelivered, o.Status)
	})

	t.Run("backward rejected", func(t *testing.T) {
		o := &Order{Status: StatusShipped}
		assert.ErrorIs(t, o.AdvanceTo(StatusConfirmed), ErrInvalidTransition)
	})

	t.Run("same status rejected", func(t *testing.T) {
		o := &Order{Status: StatusShipped}
		assert.ErrorIs(t, o.AdvanceTo(StatusShipped), ErrInvalidTransition)
	})

	t.Run("side branch not advanceable", func(t *testing.T) {
		o := &Order{Status: StatusCancelled}
		assert.ErrorIs(t, o.AdvanceTo(StatusDelivered), ErrInvalidTransition)
		o = &Order{Status: StatusPending}
		assert.ErrorIs(t, o.AdvanceTo(StatusCancelled), ErrInvalidTransition)
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("before delivery", func(t *testing.T) {
		o := &Order{Status: StatusShipped}
		assert.ErrorIs(t, o.Accept(), ErrNotDelivered)
		assert.False(t, o.PickupReady)
	})

	t.Run("after delivery", func(t *testing.T) {
		o := &Order{Status: StatusDelivered}
		require.NoError(t, o.Accept())
		assert.True(t, o.PickupReady)
		assert.NotNil(t, o.PickupReadyAt)
	})
}

func TestOrder_ForceRefund(t *testing.T) {
	o := &Order{Status: StatusDelivered, PaymentStatus: PaymentPaid}
	o.ForceRefund()
	assert.Equal(t, StatusRefunded, o.Status)
	assert.Equal(t, PaymentRefunded, o.PaymentStatus)
}

func TestOrder_Checklist(t *testing.T) {
	tests := []struct {
		status Status
		want   TrackingChecklist
	}{
		{StatusPending, TrackingChecklist{}},
		{StatusConfirmed, TrackingChecklist{Packaging: true}},
		{StatusProcessing, TrackingChecklist{Packaging: true, Checking: true}},
		{StatusShipped, TrackingChecklist{Packaging: true, Checking: true, Shipping: true}},
		{StatusDelivered, TrackingChecklist{Packaging: true, Checking: true, Shipping: true, Delivery: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			o := &Order{Status: tt.status}
			assert.Equal(t, tt.want, o.Checklist())
		})
	}

	t.Run("ready for pickup carried through", func(t *testing.T) {
		o := &Order{Status: StatusDelivered, PickupReady: true}
		assert.True(t, o.Checklist().ReadyForPickup)
	})

	t.Run("refund after acceptance keeps milestones", func(t *testing.T) {
		o := &Order{Status: StatusDelivered}
		require.NoError(t, o.Accept())
		o.ForceRefund()

		got := o.Checklist()
		assert.True(t, got.Delivery)
		assert.True(t, got.Shipping)
		assert.True(t, got.Packaging)
		assert.True(t, got.ReadyForPickup)
	})
}
