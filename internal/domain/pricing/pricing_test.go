package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/domain/discount"
	"github.com/xiebiao/storefront/internal/domain/shipping"
)

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{UnitPrice: 2000, Quantity: 3},
		{UnitPrice: 1500, Quantity: 2},
	}
	assert.Equal(t, int64(9000), Subtotal(lines))
	assert.Equal(t, int64(0), Subtotal(nil))
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		method   shipping.Method
		subtotal int64
		weight   float64
		want     int64
		wantErr  error
	}{
		{
			name:     "free shipping threshold met",
			method:   shipping.Method{BaseCost: 1500, MinOrderValue: 5000},
			subtotal: 6000,
			want:     0,
		},
		{
			name:     "below threshold pays base cost",
			method:   shipping.Method{BaseCost: 1500, MinOrderValue: 5000},
			subtotal: 4999,
			want:     1500,
		},
		{
			name:     "no threshold always pays",
			method:   shipping.Method{BaseCost: 1000},
			subtotal: 100000,
			want:     1000,
		},
		{
			name:     "weight term added",
			method:   shipping.Method{BaseCost: 1000, CostPerKg: 200},
			subtotal: 100,
			weight:   2.5,
			want:     1500,
		},
		{
			name:     "weight over limit",
			method:   shipping.Method{BaseCost: 1000, MaxWeight: 10},
			subtotal: 100,
			weight:   10.5,
			wantErr:  shipping.ErrWeightExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShippingCost(&tt.method, tt.subtotal, tt.weight)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscount(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	valid := discount.Code{
		Code:      "SAVE20",
		Type:      discount.TypePercentage,
		Value:     20,
		IsActive:  true,
		ValidFrom:  now.AddDate(0, -1, 0),
		ValidUntil: now.AddDate(0, 1, 0),
	}

	t.Run("percentage capped at max discount", func(t *testing.T) {
		code := valid
		code.MaxDiscount = 1000
		got, err := Discount(&code, 10000, nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got)
	})

	t.Run("percentage uncapped", func(t *testing.T) {
		code := valid
		got, err := Discount(&code, 10000, nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), got)
	})

	t.Run("fixed clamped to subtotal", func(t *testing.T) {
		code := valid
		code.Type = discount.TypeFixed
		code.Value = 5000
		got, err := Discount(&code, 3000, nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), got)
	})

	t.Run("inactive code invalid", func(t *testing.T) {
		code := valid
		code.IsActive = false
		_, err := Discount(&code, 10000, nil, nil, now)
		assert.ErrorIs(t, err, discount.ErrCodeInvalid)
	})

	t.Run("nil code invalid", func(t *testing.T) {
		_, err := Discount(nil, 10000, nil, nil, now)
		assert.ErrorIs(t, err, discount.ErrCodeInvalid)
	})

	t.Run("outside validity window", func(t *testing.T) {
		code := valid
		code.ValidUntil = now.AddDate(0, -1, 0).Add(-time.Hour)
		_, err := Discount(&code, 10000, nil, nil, now)
		assert.ErrorIs(t, err, discount.ErrCodeExpired)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		code := valid
		code.UsageLimit = 5
		code.UsageCount = 5
		_, err := Discount(&code, 10000, nil, nil, now)
		assert.ErrorIs(t, err, discount.ErrUsageLimitReached)
	})

	t.Run("below minimum order value", func(t *testing.T) {
		code := valid
		code.MinOrderValue = 20000
		_, err := Discount(&code, 10000, nil, nil, now)
		assert.ErrorIs(t, err, discount.ErrBelowMinimum)
	})

	t.Run("allow-list miss", func(t *testing.T) {
		code := valid
		code.ProductIDs = []uint{7, 8}
		_, err := Discount(&code, 10000, nil, []uint{1, 2}, now)
		assert.ErrorIs(t, err, discount.ErrNotApplicable)
	})

	t.Run("allow-list hit on category", func(t *testing.T) {
		code := valid
		code.CategoryIDs = []uint{3}
		got, err := Discount(&code, 10000, []uint{3}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), got)
	})
}

func TestTotal(t *testing.T) {
	assert.Equal(t, int64(6500), Total(6000, 1000, 500, 0))
	// 固定折扣已在Discount中钳制,Total不会为负
	assert.Equal(t, int64(0), Total(1000, 0, 1000, 0))
}
