package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

// ProductStore is the slice of the product repository the order flow needs.
type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	SetStock(ctx context.Context, id primitive.ObjectID, variants []models.ColorVariant, stock int64) error
}

// CouponStore is the slice of the coupon repository the order flow needs.
type CouponStore interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	SetUsage(ctx context.Context, id primitive.ObjectID, currentUses int64, active bool) error
}

// OrderStore is the slice of the order repository the order flow needs.
type OrderStore interface {
	OrderNumberChecker
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CartClearer empties a user's server-side cart.
type CartClearer interface {
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

// OrderItemInput is one requested line item. The unit price is supplied by
// the caller and snapshotted onto the order as-is.
type OrderItemInput struct {
	ProductID string
	Quantity  int64
	Price     float64
	Size      string
	Color     string
}

// PlaceOrderInput is a checkout request for one authenticated user.
type PlaceOrderInput struct {
	Items        []OrderItemInput
	CouponCode   string
	CustomerInfo models.CustomerInfo
}

// OrderService orchestrates order placement: validation, coupon
// redemption, stock decrement, cart clearing and order persistence.
//
// The step sequence is not transactional. Once the order document is
// committed, a failing later step surfaces as a PartialFailureError rather
// than rolling anything back; every step logs its outcome so partial
// failures are diagnosable.
type OrderService struct {
	products ProductStore
	coupons  CouponStore
	orders   OrderStore
	users    CartClearer
	numbers  *OrderNumberGenerator
	now      func() time.Time
}

func NewOrderService(products ProductStore, coupons CouponStore, orders OrderStore, users CartClearer) *OrderService {
	return &OrderService{
		products: products,
		coupons:  coupons,
		orders:   orders,
		users:    users,
		numbers:  NewOrderNumberGenerator(orders),
		now:      time.Now,
	}
}

// PlaceOrder validates the request, prices it, persists the order and then
// applies the side effects in order: stock decrement, coupon usage, cart
// clear. All validation failures happen before any write.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, in PlaceOrderInput) (*models.Order, error) {
	items, err := validateItems(in.Items)
	if err != nil {
		return nil, err
	}
	customerInfo, err := validateCustomerInfo(in.CustomerInfo)
	if err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	if code := strings.TrimSpace(in.CouponCode); code != "" {
		coupon, err = s.checkCoupon(ctx, code)
		if err != nil {
			return nil, err
		}
	}

	totalAmount := priceItems(items, coupon)

	orderNumber, err := s.numbers.Generate(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:   orderNumber,
		User:          userID,
		CustomerInfo:  customerInfo,
		Products:      items,
		TotalAmount:   totalAmount,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusPending,
		Currency:      models.CurrencyEGP,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("order %s: created for user %s, total %.2f %s", orderNumber, userID.Hex(), totalAmount, order.Currency)

	if err := s.adjustStock(ctx, orderNumber, items, -1); err != nil {
		return order, &PartialFailureError{OrderID: order.ID.Hex(), OrderNumber: orderNumber, Step: "stock decrement", Err: err}
	}

	if coupon != nil {
		uses := coupon.CurrentUses + 1
		active := uses < coupon.MaxUses
		if err := s.coupons.SetUsage(ctx, coupon.ID, uses, active); err != nil {
			return order, &PartialFailureError{OrderID: order.ID.Hex(), OrderNumber: orderNumber, Step: "coupon redemption", Err: err}
		}
		log.Printf("order %s: coupon %s redeemed (%d/%d uses)", orderNumber, coupon.Code, uses, coupon.MaxUses)
	}

	if err := s.users.ClearCart(ctx, userID); err != nil {
		return order, &PartialFailureError{OrderID: order.ID.Hex(), OrderNumber: orderNumber, Step: "cart clear", Err: err}
	}
	log.Printf("order %s: cart cleared for user %s", orderNumber, userID.Hex())

	return order, nil
}

// ValidateCoupon is the read-only pre-checkout check. It reports the coupon
// as valid, expired, exhausted or missing, deactivating it as a side effect
// when expiry or exhaustion is observed. It never increments usage; only
// PlaceOrder does.
func (s *OrderService) ValidateCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	return s.checkCoupon(ctx, strings.TrimSpace(code))
}

// checkCoupon looks up a coupon case-insensitively and enforces the
// redeemability predicate, lazily persisting a deactivation when the stored
// active flag is found stale. The lookup deliberately ignores the active
// flag so an exhausted or expired coupon keeps reporting its real reason
// after its own deactivation instead of degrading to "not found"; only a
// coupon an admin toggled off with uses and time to spare reads as missing.
func (s *OrderService) checkCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	now := s.now()
	if coupon.IsExpired(now) {
		s.deactivateCoupon(ctx, coupon)
		return nil, ErrCouponExpired
	}
	if coupon.IsExhausted() {
		s.deactivateCoupon(ctx, coupon)
		return nil, ErrCouponExhausted
	}
	if !coupon.IsActive {
		return nil, ErrCouponNotFound
	}

	return coupon, nil
}

// deactivateCoupon is best-effort: the stored flag is only a cache of the
// redeemability predicate, so a failed write is logged and swallowed.
func (s *OrderService) deactivateCoupon(ctx context.Context, coupon *models.Coupon) {
	if !coupon.IsActive {
		return
	}
	if err := s.coupons.SetActive(ctx, coupon.ID, false); err != nil {
		log.Printf("coupon %s: deactivation failed: %v", coupon.Code, err)
		return
	}
	log.Printf("coupon %s: deactivated", coupon.Code)
}

// DeleteOrder restores stock for every line item unless the order was
// already cancelled, then deletes the order document. Unmatched products or
// variants are skipped during restoration.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	// A cancelled order is assumed to have had its stock restored by the
	// transition that cancelled it.
	if order.PaymentStatus != models.PaymentStatusCancelled {
		if err := s.adjustStock(ctx, order.OrderNumber, order.Products, 1); err != nil {
			return err
		}
	}

	if err := s.orders.Delete(ctx, order.ID); err != nil {
		return err
	}
	log.Printf("order %s: deleted", order.OrderNumber)
	return nil
}

// UpdateOrderStatus sets the payment status after validating the value.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !models.IsValidPaymentStatus(status) {
		return ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	log.Printf("order %s: payment status set to %s", orderID, status)
	return nil
}

// adjustStock applies sign*quantity to the stock slot of every line item.
// Missing products and unmatched color/size combinations are skipped with a
// log line; only persistence failures propagate.
func (s *OrderService) adjustStock(ctx context.Context, orderNumber string, items []models.OrderItem, sign int64) error {
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.Product.Hex())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("order %s: product %s not found, stock adjustment skipped", orderNumber, item.Product.Hex())
				continue
			}
			return err
		}

		if !product.AdjustStock(item.Color, item.Size, sign*item.Quantity) {
			log.Printf("order %s: product %s has no %s/%s variant, stock adjustment skipped",
				orderNumber, item.Product.Hex(), item.Color, item.Size)
			continue
		}

		if err := s.products.SetStock(ctx, product.ID, product.ColorVariants, product.Stock); err != nil {
			return err
		}
		log.Printf("order %s: product %s stock adjusted by %d", orderNumber, item.Product.Hex(), sign*item.Quantity)
	}
	return nil
}

// priceItems computes Σ(price × quantity) minus the coupon discount.
// The discount is math.Round(total × pct / 100): half away from zero, which
// matches conventional half-up rounding for the non-negative totals that
// occur here.
func priceItems(items []models.OrderItem, coupon *models.Coupon) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	if coupon != nil {
		total -= math.Round(total * coupon.DiscountPercentage / 100)
	}
	return total
}

func validateItems(items []OrderItemInput) ([]models.OrderItem, error) {
	if len(items) == 0 {
		return nil, ErrProductsRequired
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, validationErr("products", "each product needs a valid id")
		}
		if item.Quantity < 1 {
			return nil, validationErr("products", "quantity must be at least 1")
		}
		if item.Price < 0 {
			return nil, validationErr("products", "price cannot be negative")
		}
		orderItems = append(orderItems, models.OrderItem{
			Product:  productID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Size:     strings.ToUpper(strings.TrimSpace(item.Size)),
			Color:    strings.TrimSpace(item.Color),
		})
	}
	return orderItems, nil
}

func validateCustomerInfo(info models.CustomerInfo) (models.CustomerInfo, error) {
	switch {
	case strings.TrimSpace(info.Name) == "":
		return info, validationErr("customerInfo.name", "customer name is required")
	case strings.TrimSpace(info.Email) == "":
		return info, validationErr("customerInfo.email", "customer email is required")
	case strings.TrimSpace(info.Phone) == "":
		return info, validationErr("customerInfo.phone", "customer phone is required")
	case strings.TrimSpace(info.Address.Street) == "":
		return info, validationErr("customerInfo.address.street", "street is required")
	case strings.TrimSpace(info.Address.City) == "":
		return info, validationErr("customerInfo.address.city", "city is required")
	case strings.TrimSpace(info.Address.Governorate) == "":
		return info, validationErr("customerInfo.address.governorate", "governorate is required")
	case strings.TrimSpace(info.Address.PostalCode) == "":
		return info, validationErr("customerInfo.address.postalCode", "postal code is required")
	}

	if strings.TrimSpace(info.Address.Country) == "" {
		info.Address.Country = "Egypt"
	}
	return info, nil
}
