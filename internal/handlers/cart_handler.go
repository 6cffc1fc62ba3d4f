package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

// CartHandler manages the server-side cart stored on the user document.
// Order placement clears it as one of its side effects.
type CartHandler struct {
	users    *repository.UserRepository
	products *repository.ProductRepository
}

func NewCartHandler(users *repository.UserRepository, products *repository.ProductRepository) *CartHandler {
	return &CartHandler{users: users, products: products}
}

type cartProductResponse struct {
	*models.Product
	Quantity int64  `json:"quantity"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
}

// GET /api/cart
func (h *CartHandler) GetCartProducts(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	items := make([]cartProductResponse, 0, len(user.CartItems))
	for _, item := range user.CartItems {
		product, err := h.products.FindByID(ctx, item.Product.Hex())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Product was deleted since it was added; drop it from view.
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		items = append(items, cartProductResponse{
			Product:  product,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		})
	}

	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func sameCartSlot(item models.CartItem, productID string, size, color string) bool {
	return item.Product.Hex() == productID &&
		strings.EqualFold(item.Size, size) &&
		strings.EqualFold(item.Color, color)
}

// POST /api/cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := h.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	items := user.CartItems
	merged := false
	for i := range items {
		if sameCartSlot(items[i], req.ProductID, req.Size, req.Color) {
			items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			Product:  product.ID,
			Quantity: req.Quantity,
			Size:     strings.ToUpper(strings.TrimSpace(req.Size)),
			Color:    strings.TrimSpace(req.Color),
		})
	}

	if err := h.users.SetCart(ctx, user.ID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

// PUT /api/cart/:id — set the quantity of one cart slot; zero removes it.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	user := middleware.CurrentUser(c)
	productID := c.Param("id")

	var req struct {
		Quantity int64  `json:"quantity"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be zero or greater"})
		return
	}

	items := make([]models.CartItem, 0, len(user.CartItems))
	found := false
	for _, item := range user.CartItems {
		if sameCartSlot(item, productID, req.Size, req.Color) {
			found = true
			if req.Quantity == 0 {
				continue
			}
			item.Quantity = req.Quantity
		}
		items = append(items, item)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in cart"})
		return
	}

	if err := h.users.SetCart(c.Request.Context(), user.ID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}

// DELETE /api/cart — remove one product's slots when productId is given,
// otherwise empty the whole cart.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		ProductID string `json:"productId"`
	}
	_ = c.ShouldBindJSON(&req)

	var items []models.CartItem
	if req.ProductID != "" {
		for _, item := range user.CartItems {
			if item.Product.Hex() != req.ProductID {
				items = append(items, item)
			}
		}
	}

	if err := h.users.SetCart(c.Request.Context(), user.ID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if items == nil {
		items = make([]models.CartItem, 0)
	}
	c.JSON(http.StatusOK, gin.H{"cartItems": items})
}
