package service

import (
	"context"
	"math/rand"
	"strconv"
)

// Order numbers are 3 to 5 decimal digits: a uniform draw in [100, 99999].
const (
	orderNumberMin = 100
	orderNumberMax = 99999
)

// OrderNumberChecker answers whether an order number is already taken.
type OrderNumberChecker interface {
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// OrderNumberGenerator produces short human-facing order identifiers by
// drawing random numbers and collision-checking them against the ledger.
// There is no uniqueness lock: two concurrent calls can both see the same
// number as free. The number space dwarfs realistic order volume, so the
// loop terminates quickly in practice and the race is tolerated.
type OrderNumberGenerator struct {
	orders OrderNumberChecker
}

func NewOrderNumberGenerator(orders OrderNumberChecker) *OrderNumberGenerator {
	return &OrderNumberGenerator{orders: orders}
}

// Generate draws until it finds a number not present in the ledger.
func (g *OrderNumberGenerator) Generate(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		number := strconv.Itoa(rand.Intn(orderNumberMax-orderNumberMin+1) + orderNumberMin)

		exists, err := g.orders.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
}
