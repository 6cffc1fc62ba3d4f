package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

// ============================================
// In-memory fakes
// ============================================

type fakeProductStore struct {
	products    map[string]*models.Product
	setStockErr error
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	store := &fakeProductStore{products: make(map[string]*models.Product)}
	for _, p := range products {
		store.products[p.ID.Hex()] = p
	}
	return store
}

func cloneProduct(p *models.Product) *models.Product {
	cp := *p
	cp.ColorVariants = make([]models.ColorVariant, len(p.ColorVariants))
	for i, v := range p.ColorVariants {
		cp.ColorVariants[i] = v
		cp.ColorVariants[i].Sizes = append([]models.SizeStock(nil), v.Sizes...)
	}
	return &cp
}

func (f *fakeProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (f *fakeProductStore) SetStock(_ context.Context, id primitive.ObjectID, variants []models.ColorVariant, stock int64) error {
	if f.setStockErr != nil {
		return f.setStockErr
	}
	p, ok := f.products[id.Hex()]
	if !ok {
		return repository.ErrNotFound
	}
	p.ColorVariants = variants
	p.Stock = stock
	return nil
}

type fakeCouponStore struct {
	coupons map[string]*models.Coupon
}

func newFakeCouponStore(coupons ...*models.Coupon) *fakeCouponStore {
	store := &fakeCouponStore{coupons: make(map[string]*models.Coupon)}
	for _, c := range coupons {
		store.coupons[strings.ToUpper(c.Code)] = c
	}
	return store
}

func (f *fakeCouponStore) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	c, ok := f.coupons[strings.ToUpper(code)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCouponStore) byID(id primitive.ObjectID) *models.Coupon {
	for _, c := range f.coupons {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (f *fakeCouponStore) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	c := f.byID(id)
	if c == nil {
		return repository.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (f *fakeCouponStore) SetUsage(_ context.Context, id primitive.ObjectID, currentUses int64, active bool) error {
	c := f.byID(id)
	if c == nil {
		return repository.ErrNotFound
	}
	c.CurrentUses = currentUses
	c.IsActive = active
	return nil
}

type fakeOrderStore struct {
	orders    map[string]*models.Order
	insertErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	f.orders[order.ID.Hex()] = order
	return nil
}

func (f *fakeOrderStore) ExistsByNumber(_ context.Context, number string) (bool, error) {
	for _, o := range f.orders {
		if o.OrderNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id string, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.PaymentStatus = status
	return nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id.Hex()]; !ok {
		return repository.ErrNotFound
	}
	delete(f.orders, id.Hex())
	return nil
}

type fakeCartClearer struct {
	cleared  []primitive.ObjectID
	clearErr error
}

func (f *fakeCartClearer) ClearCart(_ context.Context, userID primitive.ObjectID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, userID)
	return nil
}

// ============================================
// Fixtures
// ============================================

type testEnv struct {
	svc      *OrderService
	products *fakeProductStore
	coupons  *fakeCouponStore
	orders   *fakeOrderStore
	users    *fakeCartClearer
}

func newTestEnv(products ...*models.Product) *testEnv {
	env := &testEnv{
		products: newFakeProductStore(products...),
		coupons:  newFakeCouponStore(),
		orders:   newFakeOrderStore(),
		users:    &fakeCartClearer{},
	}
	env.svc = NewOrderService(env.products, env.coupons, env.orders, env.users)
	return env
}

func variantProduct(color, size string, stock int64) *models.Product {
	return &models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Tee",
		Price: 100,
		ColorVariants: []models.ColorVariant{{
			Color: color,
			Image: "tee.jpg",
			Sizes: []models.SizeStock{{Size: size, Stock: stock}},
		}},
	}
}

func validCustomerInfo() models.CustomerInfo {
	return models.CustomerInfo{
		Name:  "Sara Ahmed",
		Email: "sara@example.com",
		Phone: "+201001234567",
		Address: models.Address{
			Street:      "12 Tahrir St",
			City:        "Cairo",
			Governorate: "Cairo",
			PostalCode:  "11511",
		},
	}
}

func itemFor(p *models.Product, quantity int64, price float64, size, color string) OrderItemInput {
	return OrderItemInput{
		ProductID: p.ID.Hex(),
		Quantity:  quantity,
		Price:     price,
		Size:      size,
		Color:     color,
	}
}

// ============================================
// Placement: pricing and side effects
// ============================================

func TestPlaceOrder_NoCoupon(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)
	userID := primitive.NewObjectID()

	order, err := env.svc.PlaceOrder(context.Background(), userID, PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 2, 100, "M", "Black")},
		CustomerInfo: validCustomerInfo(),
	})

	require.NoError(t, err)
	assert.Equal(t, 200.0, order.TotalAmount)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.PaymentMethodCash, order.PaymentMethod)
	assert.Equal(t, models.CurrencyEGP, order.Currency)
	assert.GreaterOrEqual(t, len(order.OrderNumber), 3)
	assert.LessOrEqual(t, len(order.OrderNumber), 5)

	// Stock decremented on the matching variant.
	assert.Equal(t, int64(3), p1.ColorVariants[0].Sizes[0].Stock)
	// Cart cleared for the acting user.
	assert.Equal(t, []primitive.ObjectID{userID}, env.users.cleared)
	// Order persisted.
	stored, err := env.orders.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)
}

func TestPlaceOrder_OrderNumberRange(t *testing.T) {
	p1 := variantProduct("Black", "M", 100)
	env := newTestEnv(p1)

	for i := 0; i < 20; i++ {
		order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
			Items:        []OrderItemInput{itemFor(p1, 1, 50, "M", "Black")},
			CustomerInfo: validCustomerInfo(),
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(order.OrderNumber), 3)
		assert.LessOrEqual(t, len(order.OrderNumber), 5)
	}
}

func TestPlaceOrder_WithCoupon(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	coupon := &models.Coupon{
		ID:                 primitive.NewObjectID(),
		Code:               "SAVE10",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(24 * time.Hour),
		MaxUses:            5,
		CurrentUses:        4,
		IsActive:           true,
	}
	env.coupons.coupons["SAVE10"] = coupon

	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 2, 100, "M", "Black")},
		CouponCode:   "save10",
		CustomerInfo: validCustomerInfo(),
	})

	require.NoError(t, err)
	assert.Equal(t, 180.0, order.TotalAmount)
	// The redemption was the coupon's last allowed use.
	assert.Equal(t, int64(5), coupon.CurrentUses)
	assert.False(t, coupon.IsActive)
}

func TestPlaceOrder_DiscountRounding(t *testing.T) {
	p1 := variantProduct("Black", "M", 10)
	env := newTestEnv(p1)

	env.coupons.coupons["SAVE33"] = &models.Coupon{
		ID:                 primitive.NewObjectID(),
		Code:               "SAVE33",
		DiscountPercentage: 33,
		ExpirationDate:     time.Now().Add(time.Hour),
		MaxUses:            10,
		IsActive:           true,
	}

	// 3 × 33 = 99; 33% of 99 = 32.67, rounds to 33; total 66.
	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 3, 33, "M", "Black")},
		CouponCode:   "SAVE33",
		CustomerInfo: validCustomerInfo(),
	})

	require.NoError(t, err)
	assert.Equal(t, 66.0, order.TotalAmount)
}

func TestPlaceOrder_ExpiredCoupon(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	coupon := &models.Coupon{
		ID:                 primitive.NewObjectID(),
		Code:               "EXPIRED5",
		DiscountPercentage: 5,
		ExpirationDate:     time.Now().Add(-24 * time.Hour),
		MaxUses:            10,
		IsActive:           true,
	}
	env.coupons.coupons["EXPIRED5"] = coupon

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 2, 100, "M", "Black")},
		CouponCode:   "EXPIRED5",
		CustomerInfo: validCustomerInfo(),
	})

	assert.ErrorIs(t, err, ErrCouponExpired)
	// Failing the request still deactivates the coupon.
	assert.False(t, coupon.IsActive)
	// Nothing was written.
	assert.Empty(t, env.orders.orders)
	assert.Equal(t, int64(5), p1.ColorVariants[0].Sizes[0].Stock)
	assert.Empty(t, env.users.cleared)
}

func TestPlaceOrder_ExhaustedCoupon(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	coupon := &models.Coupon{
		ID:                 primitive.NewObjectID(),
		Code:               "MAXED",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(time.Hour),
		MaxUses:            3,
		CurrentUses:        3,
		IsActive:           true,
	}
	env.coupons.coupons["MAXED"] = coupon

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black")},
		CouponCode:   "MAXED",
		CustomerInfo: validCustomerInfo(),
	})

	assert.ErrorIs(t, err, ErrCouponExhausted)
	assert.False(t, coupon.IsActive)
	assert.Empty(t, env.orders.orders)
}

func TestPlaceOrder_CouponNotFound(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black")},
		CouponCode:   "NOPE",
		CustomerInfo: validCustomerInfo(),
	})

	assert.ErrorIs(t, err, ErrCouponNotFound)
	assert.Empty(t, env.orders.orders)
}

// ============================================
// Placement: validation
// ============================================

func TestPlaceOrder_EmptyItems(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		CustomerInfo: validCustomerInfo(),
	})

	assert.ErrorIs(t, err, ErrProductsRequired)
}

func TestPlaceOrder_InvalidItems(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)

	tests := []struct {
		name string
		item OrderItemInput
	}{
		{"bad product id", OrderItemInput{ProductID: "not-hex", Quantity: 1, Price: 10}},
		{"zero quantity", itemFor(p1, 0, 10, "M", "Black")},
		{"negative price", itemFor(p1, 1, -10, "M", "Black")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(p1)
			_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
				Items:        []OrderItemInput{tt.item},
				CustomerInfo: validCustomerInfo(),
			})

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Empty(t, env.orders.orders)
		})
	}
}

func TestPlaceOrder_IncompleteCustomerInfo(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)

	mutations := map[string]func(*models.CustomerInfo){
		"customerInfo.name":                   func(i *models.CustomerInfo) { i.Name = "" },
		"customerInfo.email":                  func(i *models.CustomerInfo) { i.Email = "" },
		"customerInfo.phone":                  func(i *models.CustomerInfo) { i.Phone = " " },
		"customerInfo.address.street":         func(i *models.CustomerInfo) { i.Address.Street = "" },
		"customerInfo.address.city":           func(i *models.CustomerInfo) { i.Address.City = "" },
		"customerInfo.address.governorate":    func(i *models.CustomerInfo) { i.Address.Governorate = "" },
		"customerInfo.address.postalCode":     func(i *models.CustomerInfo) { i.Address.PostalCode = "" },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			env := newTestEnv(p1)
			info := validCustomerInfo()
			mutate(&info)

			_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
				Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black")},
				CustomerInfo: info,
			})

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, field, validationErr.Field)
			assert.Empty(t, env.orders.orders)
		})
	}
}

func TestPlaceOrder_CountryDefaultsToEgypt(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	info := validCustomerInfo()
	info.Address.Country = ""

	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black")},
		CustomerInfo: info,
	})

	require.NoError(t, err)
	assert.Equal(t, "Egypt", order.CustomerInfo.Address.Country)
}

// ============================================
// Placement: stock adjustment
// ============================================

func TestPlaceOrder_StockFlooredAtZero(t *testing.T) {
	p1 := variantProduct("Black", "M", 4)
	env := newTestEnv(p1)

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 10, 100, "M", "Black")},
		CustomerInfo: validCustomerInfo(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), p1.ColorVariants[0].Sizes[0].Stock)
}

func TestPlaceOrder_LegacyFlatStock(t *testing.T) {
	p1 := &models.Product{ID: primitive.NewObjectID(), Name: "Mug", Price: 50, Stock: 7}
	env := newTestEnv(p1)

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 3, 50, "", "")},
		CustomerInfo: validCustomerInfo(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), p1.Stock)
}

func TestPlaceOrder_MissingProductSkipped(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	ghost := OrderItemInput{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, Price: 20}
	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black"), ghost},
		CustomerInfo: validCustomerInfo(),
	})

	// The unknown product is skipped silently; the order still succeeds and
	// prices the ghost item.
	require.NoError(t, err)
	assert.Equal(t, 120.0, order.TotalAmount)
	assert.Equal(t, int64(4), p1.ColorVariants[0].Sizes[0].Stock)
}

func TestPlaceOrder_UnmatchedVariantSkipped(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 2, 100, "XL", "Red")},
		CustomerInfo: validCustomerInfo(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), p1.ColorVariants[0].Sizes[0].Stock)
}

// ============================================
// Placement: partial failure after commit
// ============================================

func TestPlaceOrder_StockWriteFailure(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)
	env.products.setStockErr = errors.New("connection reset")

	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 2, 100, "M", "Black")},
		CustomerInfo: validCustomerInfo(),
	})

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "stock decrement", partial.Step)
	// The order is already committed and is reported back to the caller.
	require.NotNil(t, order)
	assert.Equal(t, partial.OrderNumber, order.OrderNumber)
	_, findErr := env.orders.FindByID(context.Background(), partial.OrderID)
	assert.NoError(t, findErr)
	// Later steps never ran.
	assert.Empty(t, env.users.cleared)
}

func TestPlaceOrder_CartClearFailure(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)
	env.users.clearErr = errors.New("write timeout")

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black")},
		CustomerInfo: validCustomerInfo(),
	})

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "cart clear", partial.Step)
	// The stock decrement had already been applied.
	assert.Equal(t, int64(4), p1.ColorVariants[0].Sizes[0].Stock)
}

// ============================================
// Coupon validation (read-only path)
// ============================================

func TestValidateCoupon_Valid(t *testing.T) {
	env := newTestEnv()
	env.coupons.coupons["SAVE10"] = &models.Coupon{
		ID:                 primitive.NewObjectID(),
		Code:               "SAVE10",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(time.Hour),
		MaxUses:            5,
		CurrentUses:        2,
		IsActive:           true,
	}

	coupon, err := env.svc.ValidateCoupon(context.Background(), "  save10 ")

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
	assert.Equal(t, 10.0, coupon.DiscountPercentage)
	// Validation never consumes a use.
	assert.Equal(t, int64(2), env.coupons.coupons["SAVE10"].CurrentUses)
}

func TestValidateCoupon_ExhaustedAfterRedemption(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	coupon := &models.Coupon{
		ID:                 primitive.NewObjectID(),
		Code:               "LAST1",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(time.Hour),
		MaxUses:            1,
		CurrentUses:        0,
		IsActive:           true,
	}
	env.coupons.coupons["LAST1"] = coupon

	_, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black")},
		CouponCode:   "LAST1",
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)
	assert.False(t, coupon.IsActive)

	// A later validation reports exhausted, not missing.
	_, err = env.svc.ValidateCoupon(context.Background(), "LAST1")
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestValidateCoupon_AdminDisabledReadsAsMissing(t *testing.T) {
	env := newTestEnv()
	env.coupons.coupons["OFF"] = &models.Coupon{
		ID:                 primitive.NewObjectID(),
		Code:               "OFF",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(time.Hour),
		MaxUses:            5,
		IsActive:           false,
	}

	_, err := env.svc.ValidateCoupon(context.Background(), "OFF")
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

// ============================================
// Deletion / cancellation
// ============================================

func TestDeleteOrder_RestoresStock(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 2, 100, "M", "Black")},
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), p1.ColorVariants[0].Sizes[0].Stock)

	err = env.svc.DeleteOrder(context.Background(), order.ID.Hex())

	require.NoError(t, err)
	// Round-trip: decrement then restore returns the original stock.
	assert.Equal(t, int64(5), p1.ColorVariants[0].Sizes[0].Stock)
	_, err = env.orders.FindByID(context.Background(), order.ID.Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteOrder_CancelledOrderSkipsRestore(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 2, 100, "M", "Black")},
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.UpdateOrderStatus(context.Background(), order.ID.Hex(), models.PaymentStatusCancelled))
	require.NoError(t, env.svc.DeleteOrder(context.Background(), order.ID.Hex()))

	// Stock stays decremented; the cancellation transition is assumed to
	// have restored it already.
	assert.Equal(t, int64(3), p1.ColorVariants[0].Sizes[0].Stock)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	env := newTestEnv()
	err := env.svc.DeleteOrder(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// ============================================
// Status updates
// ============================================

func TestUpdateOrderStatus(t *testing.T) {
	p1 := variantProduct("Black", "M", 5)
	env := newTestEnv(p1)

	order, err := env.svc.PlaceOrder(context.Background(), primitive.NewObjectID(), PlaceOrderInput{
		Items:        []OrderItemInput{itemFor(p1, 1, 100, "M", "Black")},
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.UpdateOrderStatus(context.Background(), order.ID.Hex(), models.PaymentStatusPaid))
	stored, err := env.orders.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	assert.ErrorIs(t, env.svc.UpdateOrderStatus(context.Background(), order.ID.Hex(), "shipped"), ErrInvalidStatus)
	assert.ErrorIs(t, env.svc.UpdateOrderStatus(context.Background(), primitive.NewObjectID().Hex(), models.PaymentStatusPaid), ErrOrderNotFound)
}
