package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoupon_IsRedeemable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	base := Coupon{
		Code:               "SAVE10",
		DiscountPercentage: 10,
		ExpirationDate:     now.Add(24 * time.Hour),
		MaxUses:            5,
		CurrentUses:        0,
		IsActive:           true,
	}

	tests := []struct {
		name   string
		mutate func(*Coupon)
		want   bool
	}{
		{"fresh coupon", func(c *Coupon) {}, true},
		{"inactive", func(c *Coupon) { c.IsActive = false }, false},
		{"expired", func(c *Coupon) { c.ExpirationDate = now.Add(-time.Minute) }, false},
		{"at max uses", func(c *Coupon) { c.CurrentUses = 5 }, false},
		{"over max uses", func(c *Coupon) { c.CurrentUses = 6 }, false},
		{"one use left", func(c *Coupon) { c.CurrentUses = 4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Equal(t, tt.want, c.IsRedeemable(now))
		})
	}
}

func TestCoupon_ExpiryBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c := Coupon{ExpirationDate: now, IsActive: true, MaxUses: 1}
	// Expiration exactly at "now" is not yet past.
	assert.False(t, c.IsExpired(now))
	assert.True(t, c.IsExpired(now.Add(time.Nanosecond)))
}
