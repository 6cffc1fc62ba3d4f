package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"
)

type CouponHandler struct {
	orders     *service.OrderService
	couponRepo *repository.CouponRepository
}

func NewCouponHandler(orders *service.OrderService, couponRepo *repository.CouponRepository) *CouponHandler {
	return &CouponHandler{orders: orders, couponRepo: couponRepo}
}

// GET /api/coupons — active coupons visible to shoppers.
func (h *CouponHandler) GetActiveCoupons(c *gin.Context) {
	coupons, err := h.couponRepo.FindActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// POST /api/coupons/validate — the read-only pre-checkout check. Usage is
// only incremented during order placement.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code is required"})
		return
	}

	coupon, err := h.orders.ValidateCoupon(c.Request.Context(), req.Code)
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Coupon not found"})
	case errors.Is(err, service.ErrCouponExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon has expired"})
	case errors.Is(err, service.ErrCouponExhausted):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon has reached maximum uses"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":            "Coupon is valid",
			"code":               coupon.Code,
			"discountPercentage": coupon.DiscountPercentage,
		})
	}
}

// POST /api/coupons (admin)
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req struct {
		Code               string  `json:"code"`
		DiscountPercentage float64 `json:"discountPercentage"`
		ExpirationDays     int     `json:"expirationDays"`
		MaxUses            int64   `json:"maxUses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	if strings.TrimSpace(req.Code) == "" || req.DiscountPercentage == 0 || req.ExpirationDays == 0 || req.MaxUses == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Discount percentage must be between 0 and 100"})
		return
	}
	if req.MaxUses < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Max uses must be at least 1"})
		return
	}

	if _, err := h.couponRepo.FindByCode(c.Request.Context(), req.Code); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code already exists"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	coupon := &models.Coupon{
		Code:               strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountPercentage: req.DiscountPercentage,
		ExpirationDate:     time.Now().AddDate(0, 0, req.ExpirationDays),
		MaxUses:            req.MaxUses,
		CurrentUses:        0,
		IsActive:           true,
	}
	if err := h.couponRepo.Create(c.Request.Context(), coupon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Coupon created successfully", "coupon": coupon})
}

// GET /api/coupons/all (admin)
func (h *CouponHandler) GetAllCoupons(c *gin.Context) {
	coupons, err := h.couponRepo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// DELETE /api/coupons/:id (admin)
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	err := h.couponRepo.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Coupon not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
	}
}

// PATCH /api/coupons/:id/toggle (admin)
func (h *CouponHandler) ToggleCouponStatus(c *gin.Context) {
	ctx := c.Request.Context()

	coupon, err := h.couponRepo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	coupon.IsActive = !coupon.IsActive
	if err := h.couponRepo.SetActive(ctx, coupon.ID, coupon.IsActive); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	status := "deactivated"
	if coupon.IsActive {
		status = "activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon " + status + " successfully",
		"coupon":  coupon,
	})
}
