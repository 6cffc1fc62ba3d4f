package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"
)

type PaymentHandler struct {
	orders    *service.OrderService
	orderRepo *repository.OrderRepository
}

func NewPaymentHandler(orders *service.OrderService, orderRepo *repository.OrderRepository) *PaymentHandler {
	return &PaymentHandler{orders: orders, orderRepo: orderRepo}
}

type orderProductRequest struct {
	ID       string   `json:"_id"`
	AltID    string   `json:"id"`
	Quantity int64    `json:"quantity"`
	Price    *float64 `json:"price"`
	Size     string   `json:"size"`
	Color    string   `json:"color"`
}

func (p orderProductRequest) productID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.AltID
}

type createOrderRequest struct {
	Products     []orderProductRequest `json:"products"`
	CouponCode   string                `json:"couponCode"`
	CustomerInfo models.CustomerInfo   `json:"customerInfo"`
}

// POST /api/payments/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Products array is required"})
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Products))
	for _, p := range req.Products {
		if p.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Each product needs a price"})
			return
		}
		items = append(items, service.OrderItemInput{
			ProductID: p.productID(),
			Quantity:  p.Quantity,
			Price:     *p.Price,
			Size:      p.Size,
			Color:     p.Color,
		})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), user.ID, service.PlaceOrderInput{
		Items:        items,
		CouponCode:   req.CouponCode,
		CustomerInfo: req.CustomerInfo,
	})
	if err != nil {
		h.respondPlacementError(c, order, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Order created successfully. Please pay in cash upon delivery.",
		"orderId":       order.ID.Hex(),
		"orderNumber":   order.OrderNumber,
		"totalAmount":   order.TotalAmount,
		"currency":      order.Currency,
		"paymentMethod": order.PaymentMethod,
		"paymentStatus": order.PaymentStatus,
	})
}

func (h *PaymentHandler) respondPlacementError(c *gin.Context, order *models.Order, err error) {
	var validationErr *service.ValidationError
	var partialErr *service.PartialFailureError

	switch {
	case errors.Is(err, service.ErrProductsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Products array is required"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message, "field": validationErr.Field})
	case errors.Is(err, service.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Coupon not found"})
	case errors.Is(err, service.ErrCouponExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon has expired"})
	case errors.Is(err, service.ErrCouponExhausted):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon has reached maximum uses"})
	case errors.As(err, &partialErr):
		// The order document is already committed; tell the caller instead
		// of pretending nothing happened.
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":     "Order was created but not all follow-up steps completed. Contact support before retrying.",
			"orderId":     partialErr.OrderID,
			"orderNumber": partialErr.OrderNumber,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// GET /api/payments/orders
func (h *PaymentHandler) GetOrderHistory(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orderRepo.FindByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/payments/orders/all (admin)
func (h *PaymentHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderRepo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// PATCH /api/payments/orders/:orderId/status (admin)
func (h *PaymentHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "paymentStatus is required"})
		return
	}

	err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), req.PaymentStatus)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment status"})
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// DELETE /api/payments/orders/:orderId (admin)
func (h *PaymentHandler) DeleteOrder(c *gin.Context) {
	err := h.orders.DeleteOrder(c.Request.Context(), c.Param("orderId"))
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
