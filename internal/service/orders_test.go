package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"micro_delivery/internal/domain"
)

// fakeStore is an in-memory Store for workflow tests.
type fakeStore struct {
	products    map[uint]*domain.Product
	txns        []domain.Transaction
	orders      []domain.Order
	nextTxnID   uint
	nextOrderID uint
	failWrites  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:    make(map[uint]*domain.Product),
		nextTxnID:   1,
		nextOrderID: 1,
	}
}

func (fs *fakeStore) ProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	p, ok := fs.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (fs *fakeStore) TransactionsByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range fs.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (fs *fakeStore) CreateTransaction(ctx context.Context, txn *domain.Transaction) error {
	if fs.failWrites {
		return errors.New("store down")
	}
	txn.ID = fs.nextTxnID
	fs.nextTxnID++
	fs.txns = append(fs.txns, *txn)
	return nil
}

func (fs *fakeStore) CreatePlacedOrder(ctx context.Context, order *domain.Order, debit *domain.Transaction) error {
	if fs.failWrites {
		// Atomic: nothing is recorded on failure
		return errors.New("store down")
	}
	order.ID = fs.nextOrderID
	fs.nextOrderID++
	debit.OrderID = &order.ID
	if debit.Note == "" {
		debit.Note = fmt.Sprintf("Order %d payment", order.ID)
	}
	fs.orders = append(fs.orders, *order)
	debit.ID = fs.nextTxnID
	fs.nextTxnID++
	fs.txns = append(fs.txns, *debit)
	return nil
}

func (fs *fakeStore) OrdersByDeliveryDate(ctx context.Context, date string, statuses []string) ([]domain.Order, error) {
	allowed := make(map[string]bool)
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []domain.Order
	for _, o := range fs.orders {
		if o.DeliveryDate == date && allowed[o.Status] {
			out = append(out, o)
		}
	}
	return out, nil
}

// testOrderService builds an order service with a fixed clock.
func testOrderService(fs *fakeStore, now time.Time) *orderService {
	return &orderService{
		store:      fs,
		cutoffHour: 23,
		now:        func() time.Time { return now },
		userLocks:  make(map[uint]*sync.Mutex),
	}
}

func (fs *fakeStore) credit(userID uint, amount float64) {
	fs.txns = append(fs.txns, domain.Transaction{ID: fs.nextTxnID, UserID: userID, Type: domain.TxnCredit, Amount: amount})
	fs.nextTxnID++
}

func (fs *fakeStore) addProduct(id uint, name string, price float64, available bool) {
	fs.products[id] = &domain.Product{ID: id, Name: name, Price: price, Available: available}
}

var noon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestPlaceOrderEmptyItems(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 100)
	svc := testOrderService(fs, noon)

	_, err := svc.PlaceOrder(context.Background(), 1, nil)
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("PlaceOrder(empty) error = %v, want ErrEmptyOrder", err)
	}
	if len(fs.orders) != 0 || len(fs.txns) != 1 {
		t.Error("empty placement must not write to the store")
	}
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 100)
	svc := testOrderService(fs, noon)

	_, err := svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 99, Qty: 1}})
	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("PlaceOrder(unknown product) error = %v, want ProductNotFoundError", err)
	}
	if notFound.ProductID != 99 {
		t.Errorf("error names product %d, want 99", notFound.ProductID)
	}
	if len(fs.orders) != 0 || len(fs.txns) != 1 {
		t.Error("failed placement must not write to the store")
	}
}

func TestPlaceOrderUnavailableProduct(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 100)
	fs.addProduct(7, "Oat Milk", 3.5, false)
	svc := testOrderService(fs, noon)

	_, err := svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 7, Qty: 2}})
	var unavailable *ProductUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("PlaceOrder(unavailable product) error = %v, want ProductUnavailableError", err)
	}
	if unavailable.Name != "Oat Milk" {
		t.Errorf("error names %q, want product name", unavailable.Name)
	}
}

func TestPlaceOrderInsufficientFunds(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 10)
	fs.addProduct(7, "Oat Milk", 5, true)
	svc := testOrderService(fs, noon)

	_, err := svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 7, Qty: 3}})
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("PlaceOrder() error = %v, want InsufficientFundsError", err)
	}
	if insufficient.RequiredTopup != 5 || insufficient.Balance != 10 || insufficient.Subtotal != 15 {
		t.Errorf("payload = %+v, want required_topup 5, balance 10, subtotal 15", insufficient)
	}
	if len(fs.orders) != 0 || len(fs.txns) != 1 {
		t.Error("declined placement must not write to the store")
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 20)
	fs.addProduct(7, "Oat Milk", 5, true)
	svc := testOrderService(fs, noon)

	result, err := svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 7, Qty: 3}})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if result.Subtotal != 15 {
		t.Errorf("subtotal = %v, want 15", result.Subtotal)
	}
	if result.Balance != 5 {
		t.Errorf("post-order balance = %v, want 5", result.Balance)
	}
	if result.Status != "confirmed" {
		t.Errorf("status = %q, want confirmed", result.Status)
	}
	if want := "2025-03-11"; result.DeliveryDate != want {
		t.Errorf("delivery date = %s, want %s (noon is before the 23:00 cutoff)", result.DeliveryDate, want)
	}

	// Exactly one debit was appended, for the subtotal, referencing the order
	debit := fs.txns[len(fs.txns)-1]
	if debit.Type != domain.TxnDebit || debit.Amount != 15 {
		t.Errorf("debit = %+v, want debit of 15", debit)
	}
	if debit.OrderID == nil || *debit.OrderID != result.OrderID {
		t.Errorf("debit order reference = %v, want %d", debit.OrderID, result.OrderID)
	}

	order := fs.orders[0]
	if order.Status != domain.OrderPlaced {
		t.Errorf("stored order status = %q, want placed", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].Name != "Oat Milk" || order.Items[0].Price != 5 || order.Items[0].Qty != 3 {
		t.Errorf("stored items = %+v, want snapshot of Oat Milk at 5 x3", order.Items)
	}
}

func TestPlaceOrderPriceSnapshot(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 100)
	fs.addProduct(7, "Oat Milk", 5, true)
	svc := testOrderService(fs, noon)

	result, err := svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 7, Qty: 2}})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	// A later catalog edit must not touch the placed order
	fs.products[7].Price = 99
	fs.products[7].Name = "Premium Oat Milk"

	order := fs.orders[0]
	if order.Items[0].Price != 5 || order.Items[0].Name != "Oat Milk" {
		t.Errorf("order line changed after catalog edit: %+v", order.Items[0])
	}
	if order.Subtotal != result.Subtotal || order.Subtotal != 10 {
		t.Errorf("order subtotal changed after catalog edit: %v", order.Subtotal)
	}
}

func TestPlaceOrderRoundsSubtotal(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 10)
	fs.addProduct(1, "Sticker", 0.1, true)
	svc := testOrderService(fs, noon)

	result, err := svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 1, Qty: 3}})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if result.Subtotal != 0.3 {
		t.Errorf("subtotal = %v, want 0.3", result.Subtotal)
	}
}

func TestPlaceOrderStoreFailure(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 100)
	fs.addProduct(7, "Oat Milk", 5, true)
	fs.failWrites = true
	svc := testOrderService(fs, noon)

	_, err := svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 7, Qty: 1}})
	if err == nil {
		t.Fatal("PlaceOrder() succeeded with a failing store")
	}
	if len(fs.orders) != 0 {
		t.Error("failed write left an order behind")
	}
}

func TestPlaceOrderConcurrentSameUser(t *testing.T) {
	fs := newFakeStore()
	fs.credit(1, 15)
	fs.addProduct(7, "Oat Milk", 10, true)
	svc := testOrderService(fs, noon)

	// Two placements race for a wallet that covers only one of them. The
	// per-user lock serializes them, so exactly one must succeed.
	// The fake store is not concurrency-safe on its own, which is exactly
	// what the lock has to compensate for.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(context.Background(), 1, []OrderItemRequest{{ProductID: 7, Qty: 1}})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var insufficient *InsufficientFundsError
		if !errors.As(err, &insufficient) {
			t.Errorf("unexpected error kind: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d placements succeeded, want exactly 1", succeeded)
	}
	if len(fs.orders) != 1 {
		t.Errorf("%d orders written, want 1", len(fs.orders))
	}
}

func TestSummarizeTomorrow(t *testing.T) {
	fs := newFakeStore()
	tomorrow := "2025-03-11"
	dayAfter := "2025-03-12"
	fs.orders = []domain.Order{
		{ID: 1, Status: domain.OrderPlaced, DeliveryDate: tomorrow, Items: []domain.OrderItem{
			{ProductID: 1, Name: "Apples", Qty: 2},
		}},
		{ID: 2, Status: domain.OrderPacked, DeliveryDate: tomorrow, Items: []domain.OrderItem{
			{ProductID: 1, Name: "Apples", Qty: 3},
			{ProductID: 2, Name: "Bread", Qty: 1},
		}},
		{ID: 3, Status: domain.OrderPlaced, DeliveryDate: dayAfter, Items: []domain.OrderItem{
			{ProductID: 1, Name: "Apples", Qty: 4},
		}},
		{ID: 4, Status: domain.OrderCancelled, DeliveryDate: tomorrow, Items: []domain.OrderItem{
			{ProductID: 2, Name: "Bread", Qty: 9},
		}},
	}
	svc := testOrderService(fs, noon)

	summary, err := svc.SummarizeTomorrow(context.Background(), noon)
	if err != nil {
		t.Fatalf("SummarizeTomorrow() error = %v", err)
	}
	if summary.Date != tomorrow {
		t.Errorf("date = %s, want %s", summary.Date, tomorrow)
	}
	if summary.OrderCount != 2 {
		t.Errorf("order count = %d, want 2", summary.OrderCount)
	}
	totals := make(map[uint]int)
	names := make(map[uint]string)
	for _, it := range summary.Items {
		totals[it.ProductID] = it.TotalQty
		names[it.ProductID] = it.Name
	}
	if totals[1] != 5 || totals[2] != 1 {
		t.Errorf("totals = %v, want product 1: 5, product 2: 1", totals)
	}
	if names[1] != "Apples" || names[2] != "Bread" {
		t.Errorf("names = %v", names)
	}
}

func TestSummarizeTomorrowIgnoresCutoff(t *testing.T) {
	fs := newFakeStore()
	fs.orders = []domain.Order{
		{ID: 1, Status: domain.OrderPlaced, DeliveryDate: "2025-03-11", Items: []domain.OrderItem{
			{ProductID: 1, Name: "Apples", Qty: 1},
		}},
	}
	svc := testOrderService(fs, noon)

	// 23:30 is past the cutoff, yet the summary still targets literal
	// tomorrow, not the two-day delivery date a new order would get.
	lateNight := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	summary, err := svc.SummarizeTomorrow(context.Background(), lateNight)
	if err != nil {
		t.Fatalf("SummarizeTomorrow() error = %v", err)
	}
	if summary.Date != "2025-03-11" {
		t.Errorf("date = %s, want 2025-03-11", summary.Date)
	}
	if summary.OrderCount != 1 {
		t.Errorf("order count = %d, want 1", summary.OrderCount)
	}
}
