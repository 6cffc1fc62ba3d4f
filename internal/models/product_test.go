package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoColorProduct() *Product {
	return &Product{
		Name:  "Hoodie",
		Price: 250,
		ColorVariants: []ColorVariant{
			{
				Color: "Black",
				Sizes: []SizeStock{{Size: "M", Stock: 3}, {Size: "L", Stock: 2}},
			},
			{
				Color: "White",
				Sizes: []SizeStock{{Size: "M", Stock: 4}},
			},
		},
	}
}

func TestAvailableStock_Variants(t *testing.T) {
	p := twoColorProduct()
	assert.Equal(t, int64(9), p.AvailableStock())
}

func TestAvailableStock_LegacyFlat(t *testing.T) {
	p := &Product{Name: "Mug", Stock: 12}
	assert.Equal(t, int64(12), p.AvailableStock())
}

func TestAvailableStock_VariantsShadowLegacyField(t *testing.T) {
	// A product with variants never counts the legacy field on top.
	p := twoColorProduct()
	p.Stock = 100
	assert.Equal(t, int64(9), p.AvailableStock())
}

func TestAdjustStock_DecrementVariant(t *testing.T) {
	p := twoColorProduct()

	matched := p.AdjustStock("Black", "M", -2)

	assert.True(t, matched)
	assert.Equal(t, int64(1), p.ColorVariants[0].Sizes[0].Stock)
	// Other slots untouched.
	assert.Equal(t, int64(2), p.ColorVariants[0].Sizes[1].Stock)
	assert.Equal(t, int64(4), p.ColorVariants[1].Sizes[0].Stock)
}

func TestAdjustStock_CaseInsensitiveMatch(t *testing.T) {
	p := twoColorProduct()
	assert.True(t, p.AdjustStock("black", "m", -1))
	assert.Equal(t, int64(2), p.ColorVariants[0].Sizes[0].Stock)
}

func TestAdjustStock_FlooredAtZero(t *testing.T) {
	p := twoColorProduct()

	matched := p.AdjustStock("Black", "M", -10)

	assert.True(t, matched)
	assert.Equal(t, int64(0), p.ColorVariants[0].Sizes[0].Stock)
}

func TestAdjustStock_RoundTrip(t *testing.T) {
	p := twoColorProduct()

	assert.True(t, p.AdjustStock("White", "M", -3))
	assert.True(t, p.AdjustStock("White", "M", 3))
	assert.Equal(t, int64(4), p.ColorVariants[1].Sizes[0].Stock)
}

func TestAdjustStock_UnknownColor(t *testing.T) {
	p := twoColorProduct()
	assert.False(t, p.AdjustStock("Red", "M", -1))
}

func TestAdjustStock_UnknownSize(t *testing.T) {
	p := twoColorProduct()
	assert.False(t, p.AdjustStock("White", "XL", -1))
}

func TestAdjustStock_LegacyFlat(t *testing.T) {
	p := &Product{Name: "Mug", Stock: 5}

	assert.True(t, p.AdjustStock("", "", -3))
	assert.Equal(t, int64(2), p.Stock)

	assert.True(t, p.AdjustStock("", "", -10))
	assert.Equal(t, int64(0), p.Stock)
}

func TestIsValidSize(t *testing.T) {
	for _, size := range []string{"XS", "s", "m", "L", "xl", "XXL", "xxxl"} {
		assert.True(t, IsValidSize(size), size)
	}
	for _, size := range []string{"", "XXXXL", "38", "medium"} {
		assert.False(t, IsValidSize(size), size)
	}
}
