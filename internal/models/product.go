package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidSizes is the closed set of apparel sizes a variant may carry.
var ValidSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}

func IsValidSize(size string) bool {
	upper := strings.ToUpper(size)
	for _, s := range ValidSizes {
		if s == upper {
			return true
		}
	}
	return false
}

type SizeStock struct {
	Size  string `json:"size" bson:"size"`
	Stock int64  `json:"stock" bson:"stock"`
}

type ColorVariant struct {
	Color string      `json:"color" bson:"color"`
	Image string      `json:"image" bson:"image"`
	Sizes []SizeStock `json:"sizes" bson:"sizes"`
}

// Product carries either per-color/per-size stock in ColorVariants or a
// legacy flat Stock count, never both. Prices are in Egyptian Pounds.
type Product struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" binding:"required"`
	Description   string             `json:"description" bson:"description"`
	Price         float64            `json:"price" bson:"price"`
	Image         string             `json:"image" bson:"image"`
	Images        []string           `json:"images" bson:"images"`
	Category      string             `json:"category" bson:"category"`
	ColorVariants []ColorVariant     `json:"colorVariants,omitempty" bson:"colorVariants,omitempty"`
	Stock         int64              `json:"stock,omitempty" bson:"stock,omitempty"`
	SizeChart     string             `json:"sizeChart,omitempty" bson:"sizeChart,omitempty"`
	IsFeatured    bool               `json:"isFeatured" bson:"isFeatured"`
	TotalStock    int64              `json:"totalStock" bson:"-"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AvailableStock sums stock across color variants, or falls back to the
// legacy flat field when no variants exist.
func (p *Product) AvailableStock() int64 {
	if len(p.ColorVariants) == 0 {
		return p.Stock
	}
	var total int64
	for _, variant := range p.ColorVariants {
		for _, s := range variant.Sizes {
			total += s.Stock
		}
	}
	return total
}

// AdjustStock applies delta to the stock slot addressed by color and size,
// or to the legacy flat field when the product has no variants. The result
// is floored at zero. It reports whether a matching slot was found; callers
// treat a miss as a skip, not an error.
func (p *Product) AdjustStock(color, size string, delta int64) bool {
	if len(p.ColorVariants) == 0 {
		p.Stock = clampStock(p.Stock + delta)
		return true
	}

	for vi := range p.ColorVariants {
		if !strings.EqualFold(p.ColorVariants[vi].Color, color) {
			continue
		}
		for si := range p.ColorVariants[vi].Sizes {
			if strings.EqualFold(p.ColorVariants[vi].Sizes[si].Size, size) {
				p.ColorVariants[vi].Sizes[si].Stock = clampStock(p.ColorVariants[vi].Sizes[si].Stock + delta)
				return true
			}
		}
		return false
	}
	return false
}

func clampStock(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
