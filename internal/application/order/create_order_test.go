package order

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/domain/address"
	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/discount"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/shipping"
	"github.com/xiebiao/storefront/internal/domain/stock"
	"github.com/xiebiao/storefront/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// ---- 内存实现,只为结算用例测试服务 ----

type lineKey struct{ productID, variantID uint }

type fakeLedger struct {
	mu    sync.Mutex
	stock map[lineKey]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{stock: make(map[lineKey]int)}
}

func (f *fakeLedger) set(productID, variantID uint, qty int) {
	f.stock[lineKey{productID, variantID}] = qty
}

func (f *fakeLedger) get(productID, variantID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[lineKey{productID, variantID}]
}

func (f *fakeLedger) Reserve(_ context.Context, productID, variantID uint, qty int) error {
	if qty <= 0 {
		return stock.ErrInvalidQuantity
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	k := lineKey{productID, variantID}
	if f.stock[k] < qty {
		return stock.ErrInsufficientStock
	}
	f.stock[k] -= qty
	return nil
}

func (f *fakeLedger) Release(_ context.Context, productID, variantID uint, qty int) error {
	if qty <= 0 {
		return stock.ErrInvalidQuantity
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[lineKey{productID, variantID}] += qty
	return nil
}

type fakeProductRepo struct {
	products map[uint]*catalog.Product
	variants map[uint]*catalog.Variant
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) FindVariantByID(_ context.Context, id uint) (*catalog.Variant, error) {
	v, ok := f.variants[id]
	if !ok {
		return nil, catalog.ErrVariantNotFound
	}
	cv := *v
	return &cv, nil
}

func (f *fakeProductRepo) FindVariant(_ context.Context, productID uint, size, color string) (*catalog.Variant, error) {
	for _, v := range f.variants {
		if v.ProductID == productID && v.Matches(size, color) {
			cv := *v
			return &cv, nil
		}
	}
	return nil, catalog.ErrVariantNotFound
}

func (f *fakeProductRepo) ListVariants(_ context.Context, productID uint) ([]*catalog.Variant, error) {
	var out []*catalog.Variant
	for _, v := range f.variants {
		if v.ProductID == productID {
			cv := *v
			out = append(out, &cv)
		}
	}
	return out, nil
}

type fakeCartRepo struct {
	mu     sync.Mutex
	carts  map[uint]*cart.Cart // userID -> cart
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*cart.Cart), nextID: 1}
}

func (f *fakeCartRepo) seed(userID uint, items ...cart.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &cart.Cart{ID: f.nextID, UserID: userID, Items: items}
	f.nextID++
	f.carts[userID] = c
}

func (f *fakeCartRepo) GetOrCreate(_ context.Context, userID uint) (*cart.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.carts[userID]; ok {
		return c, nil
	}
	c := &cart.Cart{ID: f.nextID, UserID: userID}
	f.nextID++
	f.carts[userID] = c
	return c, nil
}

func (f *fakeCartRepo) FindByUserID(_ context.Context, userID uint) (*cart.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.carts[userID], nil
}

func (f *fakeCartRepo) FindItem(_ context.Context, cartID, itemID uint) (*cart.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.ID != cartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				return &c.Items[i], nil
			}
		}
	}
	return nil, cart.ErrItemNotFound
}

func (f *fakeCartRepo) AddItem(_ context.Context, item *cart.Item) error { return nil }

func (f *fakeCartRepo) UpdateItemQuantity(_ context.Context, itemID uint, quantity int) error {
	return nil
}

func (f *fakeCartRepo) RemoveItem(_ context.Context, itemID uint) error { return nil }

func (f *fakeCartRepo) Clear(_ context.Context, cartID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.ID == cartID {
			c.Items = nil
		}
	}
	return nil
}

type fakeAddressRepo struct {
	addresses map[uint]*address.Address
}

func (f *fakeAddressRepo) FindByID(_ context.Context, id uint) (*address.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return nil, address.ErrAddressNotFound
	}
	return a, nil
}

func (f *fakeAddressRepo) ListByUserID(_ context.Context, userID uint) ([]*address.Address, error) {
	var out []*address.Address
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeShippingRepo struct {
	methods map[uint]*shipping.Method
}

func (f *fakeShippingRepo) FindByID(_ context.Context, id uint) (*shipping.Method, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, shipping.ErrMethodNotFound
	}
	return m, nil
}

func (f *fakeShippingRepo) ListActive(_ context.Context, country string) ([]*shipping.Method, error) {
	var out []*shipping.Method
	for _, m := range f.methods {
		if m.IsActive && m.ServesCountry(country) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeDiscountRepo struct {
	mu    sync.Mutex
	codes map[string]*discount.Code
}

func (f *fakeDiscountRepo) FindActiveByCode(_ context.Context, code string) (*discount.Code, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dc, ok := f.codes[code]
	if !ok || !dc.IsActive {
		return nil, discount.ErrCodeInvalid
	}
	cp := *dc
	return &cp, nil
}

func (f *fakeDiscountRepo) IncrementUsage(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, dc := range f.codes {
		if dc.ID != id {
			continue
		}
		if dc.UsageLimit > 0 && dc.UsageCount >= dc.UsageLimit {
			return discount.ErrUsageLimitReached
		}
		dc.UsageCount++
		return nil
	}
	return discount.ErrCodeInvalid
}

func (f *fakeDiscountRepo) DecrementUsage(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, dc := range f.codes {
		if dc.ID == id && dc.UsageCount > 0 {
			dc.UsageCount--
		}
	}
	return nil
}

type fakeUsageStore struct {
	mu     sync.Mutex
	counts map[lineKey]int // codeID,userID
}

func newFakeUsageStore() *fakeUsageStore {
	return &fakeUsageStore{counts: make(map[lineKey]int)}
}

func (f *fakeUsageStore) Get(_ context.Context, codeID, userID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[lineKey{codeID, userID}], nil
}

func (f *fakeUsageStore) Increment(_ context.Context, codeID, userID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[lineKey{codeID, userID}]++
	return f.counts[lineKey{codeID, userID}], nil
}

func (f *fakeUsageStore) Decrement(_ context.Context, codeID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := lineKey{codeID, userID}
	if f.counts[k] > 0 {
		f.counts[k]--
	}
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = f.nextID
	f.nextID++
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) ListByUserID(_ context.Context, userID uint, filter order.UserListFilter) ([]*order.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*order.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) List(_ context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*order.Order
	for _, o := range f.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// ---- 测试环境装配 ----

type checkoutEnv struct {
	cartRepo     *fakeCartRepo
	productRepo  *fakeProductRepo
	addressRepo  *fakeAddressRepo
	shippingRepo *fakeShippingRepo
	discountRepo *fakeDiscountRepo
	usageStore   *fakeUsageStore
	orderRepo    *fakeOrderRepo
	ledger       *fakeLedger
	uc           *CreateOrderUseCase
}

func newCheckoutEnv() *checkoutEnv {
	env := &checkoutEnv{
		cartRepo:     newFakeCartRepo(),
		productRepo:  &fakeProductRepo{products: map[uint]*catalog.Product{}, variants: map[uint]*catalog.Variant{}},
		addressRepo:  &fakeAddressRepo{addresses: map[uint]*address.Address{}},
		shippingRepo: &fakeShippingRepo{methods: map[uint]*shipping.Method{}},
		discountRepo: &fakeDiscountRepo{codes: map[string]*discount.Code{}},
		usageStore:   newFakeUsageStore(),
		orderRepo:    newFakeOrderRepo(),
		ledger:       newFakeLedger(),
	}
	env.uc = NewCreateOrderUseCase(
		env.cartRepo, env.productRepo, env.addressRepo, env.shippingRepo,
		env.discountRepo, env.usageStore, env.orderRepo, env.ledger, nil,
	)
	return env
}

func (env *checkoutEnv) seedProduct(id uint, title string, price int64, stockQty int) {
	env.productRepo.products[id] = &catalog.Product{
		ID: id, Title: title, Price: price, Currency: "NGN", Stock: stockQty,
	}
	env.ledger.set(id, 0, stockQty)
}

func (env *checkoutEnv) seedAddress(id, userID uint) {
	env.addressRepo.addresses[id] = &address.Address{
		ID: id, UserID: userID, Email: "buyer@example.com", Phone: "+2348012345678", Country: "NG",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedAddress(1, 7)
	env.cartRepo.seed(7, cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 3, Price: 2000})

	o, err := env.uc.Execute(context.Background(), &CreateOrderRequest{
		UserID: 7, AddressID: 1, PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(o.OrderNumber, "ORD-"))
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentPending, o.PaymentStatus)
	assert.Equal(t, int64(6000), o.Subtotal)
	assert.Equal(t, int64(6000), o.Total)
	assert.Equal(t, "NGN", o.Currency)
	assert.Equal(t, "buyer@example.com", o.ContactEmail)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Air Max 97", o.Items[0].ProductTitle)
	assert.Equal(t, int64(6000), o.Items[0].Subtotal)

	// 库存已扣减,购物车已清空
	assert.Equal(t, 7, env.ledger.get(1, 0))
	c, _ := env.cartRepo.FindByUserID(context.Background(), 7)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, env.orderRepo.count())
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	env := newCheckoutEnv()
	env.seedAddress(1, 7)

	_, err := env.uc.Execute(context.Background(), &CreateOrderRequest{UserID: 7, AddressID: 1})
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
}

func TestCreateOrder_AddressOwnership(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedAddress(1, 99) // 地址属于他人
	env.cartRepo.seed(7, cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 1, Price: 2000})

	_, err := env.uc.Execute(context.Background(), &CreateOrderRequest{UserID: 7, AddressID: 1})
	assert.ErrorIs(t, err, address.ErrAddressNotFound)
}

func TestCreateOrder_InsufficientStockLeavesNoPartialEffects(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedProduct(2, "Jordan 1", 5000, 1)
	env.seedAddress(1, 7)
	// 第二行库存不足,第一行的预占必须被补偿释放
	env.cartRepo.seed(7,
		cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 3, Price: 2000},
		cart.Item{ID: 2, CartID: 1, ProductID: 2, Quantity: 2, Price: 5000},
	)

	_, err := env.uc.Execute(context.Background(), &CreateOrderRequest{UserID: 7, AddressID: 1})
	require.Error(t, err)

	assert.Equal(t, 10, env.ledger.get(1, 0))
	assert.Equal(t, 1, env.ledger.get(2, 0))
	assert.Equal(t, 0, env.orderRepo.count())
	c, _ := env.cartRepo.FindByUserID(context.Background(), 7)
	assert.False(t, c.IsEmpty(), "failed checkout must not clear the cart")
}

func TestCreateOrder_InvalidDiscountIsIgnored(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedAddress(1, 7)
	env.cartRepo.seed(7, cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 3, Price: 2000})

	o, err := env.uc.Execute(context.Background(), &CreateOrderRequest{
		UserID: 7, AddressID: 1, DiscountCode: "NOSUCHCODE",
	})
	require.NoError(t, err)
	assert.Empty(t, o.DiscountCode)
	assert.Equal(t, int64(0), o.DiscountAmount)
	assert.Equal(t, int64(6000), o.Total)
}

func TestCreateOrder_PercentageDiscountApplied(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedAddress(1, 7)
	env.cartRepo.seed(7, cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 3, Price: 2000})
	env.discountRepo.codes["WELCOME10"] = &discount.Code{
		ID: 1, Code: "WELCOME10", Type: discount.TypePercentage, Value: 10,
		IsActive:  true,
		ValidFrom: time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
	}

	o, err := env.uc.Execute(context.Background(), &CreateOrderRequest{
		UserID: 7, AddressID: 1, DiscountCode: "welcome10", // 大小写不敏感
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", o.DiscountCode)
	assert.Equal(t, int64(600), o.DiscountAmount)
	assert.Equal(t, int64(5400), o.Total)
	assert.Equal(t, 1, env.discountRepo.codes["WELCOME10"].UsageCount)
}

func TestCreateOrder_FreeShippingThreshold(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedAddress(1, 7)
	env.cartRepo.seed(7, cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 3, Price: 2000})
	env.shippingRepo.methods[1] = &shipping.Method{
		ID: 1, Name: "Standard", BaseCost: 1500, MinOrderValue: 5000, IsActive: true,
	}

	o, err := env.uc.Execute(context.Background(), &CreateOrderRequest{
		UserID: 7, AddressID: 1, ShippingMethodID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), o.ShippingCost, "subtotal 6000 crosses the 5000 free-shipping threshold")
	assert.Equal(t, "Standard", o.ShippingMethodName)
}

func TestCreateOrder_InactiveShippingMethod(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedAddress(1, 7)
	env.cartRepo.seed(7, cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 1, Price: 2000})
	env.shippingRepo.methods[1] = &shipping.Method{ID: 1, Name: "Standard", BaseCost: 1500, IsActive: false}

	_, err := env.uc.Execute(context.Background(), &CreateOrderRequest{
		UserID: 7, AddressID: 1, ShippingMethodID: 1,
	})
	assert.ErrorIs(t, err, shipping.ErrMethodInactive)
}

func TestCreateOrder_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	const buyers = 8
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, buyers-1)
	for i := uint(1); i <= buyers; i++ {
		env.seedAddress(i, i)
		env.cartRepo.seed(i, cart.Item{ID: i, CartID: i, ProductID: 1, Quantity: 1, Price: 2000})
	}
	// 预检用的商品库存要放开,让争抢落到账本上
	env.productRepo.products[1].Stock = buyers

	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := uint(1); i <= buyers; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := env.uc.Execute(context.Background(), &CreateOrderRequest{UserID: userID, AddressID: userID})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var failures int
	for err := range errs {
		if err != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures, "stock %d with %d buyers must reject exactly one", buyers-1, buyers)
	assert.Equal(t, 0, env.ledger.get(1, 0))
	assert.Equal(t, buyers-1, env.orderRepo.count())
}

type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedAddress(1, 7)
	env.cartRepo.seed(7, cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 3, Price: 2000})

	o, err := env.uc.Execute(context.Background(), &CreateOrderRequest{UserID: 7, AddressID: 1})
	require.NoError(t, err)
	require.Equal(t, 7, env.ledger.get(1, 0))

	cancelUC := NewCancelOrderUseCase(env.orderRepo, env.ledger, passthroughTx{}, nil)
	cancelled, err := cancelUC.Execute(context.Background(), 7, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)
	assert.Equal(t, 10, env.ledger.get(1, 0))

	// 重复取消被状态机拒绝,库存不会二次回补
	_, err = cancelUC.Execute(context.Background(), 7, o.ID)
	assert.Error(t, err)
	assert.Equal(t, 10, env.ledger.get(1, 0))

	// 他人的订单不可取消
	_, err = cancelUC.Execute(context.Background(), 8, o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestCreateOrder_FirstLineSetsCurrency(t *testing.T) {
	env := newCheckoutEnv()
	env.seedProduct(1, "Air Max 97", 2000, 10)
	env.seedProduct(2, "Jordan 1 Retro", 3000, 10)
	env.productRepo.products[2].Currency = "USD"
	env.seedAddress(1, 7)
	env.cartRepo.seed(7,
		cart.Item{ID: 1, CartID: 1, ProductID: 1, Quantity: 1, Price: 2000},
		cart.Item{ID: 2, CartID: 1, ProductID: 2, Quantity: 1, Price: 3000},
	)

	o, err := env.uc.Execute(context.Background(), &CreateOrderRequest{UserID: 7, AddressID: 1})
	require.NoError(t, err)

	// 首行定币种,后续行的币种不覆盖
	assert.Equal(t, "NGN", o.Currency)
}
