package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/cache"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

const recommendedLimit = 3

type ProductHandler struct {
	repo  *repository.ProductRepository
	cache *cache.Cache
}

func NewProductHandler(repo *repository.ProductRepository, cache *cache.Cache) *ProductHandler {
	return &ProductHandler{repo: repo, cache: cache}
}

// GET /api/products (admin)
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/featured — served through the cache; on a miss the list
// is read from the catalog and the cache repopulated.
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	ctx := c.Request.Context()

	var products []*models.Product
	found, err := h.cache.GetJSON(ctx, cache.FeaturedProductsKey, &products)
	if err != nil {
		// Degraded mode: fall through to the catalog.
		log.Println("featured products cache read failed:", err)
	}

	if !found {
		products, err = h.repo.FindFeatured(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if err := h.cache.SetJSON(ctx, cache.FeaturedProductsKey, products, 0); err != nil {
			log.Println("featured products cache write failed:", err)
		}
	}

	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No featured products found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/recommended
func (h *ProductHandler) GetRecommendedProducts(c *gin.Context) {
	products, err := h.repo.FindRandomInStock(c.Request.Context(), recommendedLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/category/:category
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	products, err := h.repo.FindByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// POST /api/products (admin)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if product.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price cannot be negative"})
		return
	}
	for _, variant := range product.ColorVariants {
		for _, s := range variant.Sizes {
			if !models.IsValidSize(s.Size) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid size: " + s.Size})
				return
			}
			if s.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Stock cannot be negative"})
				return
			}
		}
	}

	if err := h.repo.Create(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.refreshFeaturedCache(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"product": product, "message": "Product created successfully"})
}

// PATCH /api/products/:id/toggle-featured (admin)
func (h *ProductHandler) ToggleFeaturedProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	product.IsFeatured = !product.IsFeatured
	if err := h.repo.SetFeatured(ctx, product.ID, product.IsFeatured); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.refreshFeaturedCache(ctx)
	c.JSON(http.StatusOK, gin.H{"product": product, "message": "Product featured status toggled"})
}

// DELETE /api/products/:id (admin)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		h.refreshFeaturedCache(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// refreshFeaturedCache repopulates the featured list after any mutation
// that can change it. Failures only mean stale data until the next
// repopulation, so they are logged and swallowed.
func (h *ProductHandler) refreshFeaturedCache(ctx context.Context) {
	products, err := h.repo.FindFeatured(ctx)
	if err != nil {
		log.Println("featured products cache refresh failed:", err)
		return
	}
	if err := h.cache.SetJSON(ctx, cache.FeaturedProductsKey, products, 0); err != nil {
		log.Println("featured products cache refresh failed:", err)
	}
}
