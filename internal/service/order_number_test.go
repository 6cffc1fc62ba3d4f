package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNumberChecker struct {
	taken  map[string]bool
	checks int
}

func (f *fakeNumberChecker) ExistsByNumber(_ context.Context, number string) (bool, error) {
	f.checks++
	return f.taken[number], nil
}

func TestOrderNumberGenerator_Range(t *testing.T) {
	checker := &fakeNumberChecker{taken: map[string]bool{}}
	gen := NewOrderNumberGenerator(checker)

	for i := 0; i < 100; i++ {
		number, err := gen.Generate(context.Background())
		require.NoError(t, err)

		n, err := strconv.Atoi(number)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, orderNumberMin)
		assert.LessOrEqual(t, n, orderNumberMax)
	}
}

func TestOrderNumberGenerator_NeverReturnsTakenNumber(t *testing.T) {
	checker := &fakeNumberChecker{taken: map[string]bool{}}
	gen := NewOrderNumberGenerator(checker)

	// Sequential calls: every returned number is free at the instant of its
	// check, and recording it makes later draws avoid it.
	for i := 0; i < 500; i++ {
		number, err := gen.Generate(context.Background())
		require.NoError(t, err)
		require.False(t, checker.taken[number], "generator returned a taken number")
		checker.taken[number] = true
	}
	assert.GreaterOrEqual(t, checker.checks, 500)
}

func TestOrderNumberGenerator_RetriesOnCollision(t *testing.T) {
	// Occupy a large band of the low numbers so collisions are likely and
	// the retry loop is exercised.
	taken := map[string]bool{}
	for n := orderNumberMin; n < orderNumberMax; n += 2 {
		taken[strconv.Itoa(n)] = true
	}
	checker := &fakeNumberChecker{taken: taken}
	gen := NewOrderNumberGenerator(checker)

	number, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.False(t, taken[number])
}

func TestOrderNumberGenerator_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewOrderNumberGenerator(&fakeNumberChecker{taken: map[string]bool{}})
	_, err := gen.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
