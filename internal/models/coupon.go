package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon codes are stored upper-cased and looked up case-insensitively.
// IsActive is a lazily-maintained cache of redeemability: it is only forced
// false when a validation or redemption attempt observes expiry or
// exhaustion, never by a background sweep.
type Coupon struct {
	ID                 primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Code               string             `json:"code" bson:"code"`
	DiscountPercentage float64            `json:"discountPercentage" bson:"discountPercentage"`
	ExpirationDate     time.Time          `json:"expirationDate" bson:"expirationDate"`
	MaxUses            int64              `json:"maxUses" bson:"maxUses"`
	CurrentUses        int64              `json:"currentUses" bson:"currentUses"`
	IsActive           bool               `json:"isActive" bson:"isActive"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IsExpired reports whether the coupon's expiration date has passed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpirationDate.Before(now)
}

// IsExhausted reports whether the coupon has reached its usage cap.
func (c *Coupon) IsExhausted() bool {
	return c.CurrentUses >= c.MaxUses
}

// IsRedeemable is the authoritative validity predicate; the stored IsActive
// flag is only a best-effort cache of it.
func (c *Coupon) IsRedeemable(now time.Time) bool {
	return c.IsActive && !c.IsExpired(now) && !c.IsExhausted()
}
