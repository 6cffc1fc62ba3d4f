package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/repository"
)

type AnalyticsHandler struct {
	users    *repository.UserRepository
	products *repository.ProductRepository
	orders   *repository.OrderRepository
}

func NewAnalyticsHandler(users *repository.UserRepository, products *repository.ProductRepository, orders *repository.OrderRepository) *AnalyticsHandler {
	return &AnalyticsHandler{users: users, products: products, orders: orders}
}

// GET /api/analytics (admin) — headline counts plus the last week of
// per-day sales.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	userCount, err := h.users.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	productCount, err := h.products.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	totalSales, totalRevenue, err := h.orders.SalesTotals(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -7)
	dailySales, err := h.orders.DailySales(ctx, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyticsData": gin.H{
			"users":        userCount,
			"products":     productCount,
			"totalSales":   totalSales,
			"totalRevenue": totalRevenue,
		},
		"dailySalesData": dailySales,
	})
}
