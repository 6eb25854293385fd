package service

import (
	"context"
	"sync"
	"time"

	"micro_delivery/internal/domain"
)

// OrderItemRequest is one requested line: caller supplies only the product
// id and quantity, never a price.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Qty       int  `json:"qty" binding:"required,gt=0"`
}

// PlacementResult is what a successful placement returns to the caller.
type PlacementResult struct {
	OrderID      uint    `json:"order_id"`
	DeliveryDate string  `json:"delivery_date"`
	Subtotal     float64 `json:"subtotal"`
	Balance      float64 `json:"balance"`
	Status       string  `json:"status"`
}

// SummaryItem is one product line of the fulfillment summary.
type SummaryItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	TotalQty  int    `json:"total_qty"`
}

// FulfillmentSummary consolidates tomorrow's deliverable orders by product.
type FulfillmentSummary struct {
	Date       string        `json:"date"`
	Items      []SummaryItem `json:"items"`
	OrderCount int           `json:"order_count"`
}

// OrderService runs the order placement workflow and the next-morning
// fulfillment summary.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID uint, items []OrderItemRequest) (*PlacementResult, error)
	SummarizeTomorrow(ctx context.Context, now time.Time) (*FulfillmentSummary, error)
}

type orderService struct {
	store      Store
	cutoffHour int
	now        func() time.Time

	// Per-user locks serialize the balance check against the order/debit
	// write, so two concurrent placements cannot both pass the sufficiency
	// check on the same stale balance.
	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

// NewOrderService creates an OrderService backed by the given store and
// configured cutoff hour.
func NewOrderService(store Store, cutoffHour int) OrderService {
	return &orderService{
		store:      store,
		cutoffHour: cutoffHour,
		now:        time.Now,
		userLocks:  make(map[uint]*sync.Mutex),
	}
}

func (s *orderService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// PlaceOrder validates the requested lines against the catalog, snapshots
// product name and price into the order, checks the wallet covers the
// subtotal, and commits the order together with its debit transaction.
func (s *orderService) PlaceOrder(ctx context.Context, userID uint, items []OrderItemRequest) (*PlacementResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	// Resolve every distinct product once; fail fast on the first bad line.
	lookup := make(map[uint]*domain.Product, len(items))
	for _, it := range items {
		if it.Qty <= 0 {
			return nil, ErrInvalidQty
		}
		if _, ok := lookup[it.ProductID]; ok {
			continue
		}
		prod, err := s.store.ProductByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if prod == nil {
			return nil, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if !prod.Available {
			return nil, &ProductUnavailableError{Name: prod.Name}
		}
		lookup[it.ProductID] = prod
	}

	// Snapshot name and price from the catalog, never from the caller.
	orderItems := make([]domain.OrderItem, 0, len(items))
	subtotal := 0.0
	for _, it := range items {
		prod := lookup[it.ProductID]
		subtotal += prod.Price * float64(it.Qty)
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      prod.Name,
			Price:     prod.Price,
			Qty:       it.Qty,
		})
	}
	subtotal = round2(subtotal)

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	txns, err := s.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance := balanceOf(txns)
	if balance < subtotal {
		return nil, &InsufficientFundsError{
			RequiredTopup: round2(subtotal - balance),
			Balance:       balance,
			Subtotal:      subtotal,
		}
	}

	order := &domain.Order{
		UserID:       userID,
		Items:        orderItems,
		Subtotal:     subtotal,
		DeliveryDate: DateString(DeliveryDateFor(s.now(), s.cutoffHour)),
		Status:       domain.OrderPlaced,
	}
	debit := &domain.Transaction{
		UserID: userID,
		Type:   domain.TxnDebit,
		Amount: subtotal,
	}
	if err := s.store.CreatePlacedOrder(ctx, order, debit); err != nil {
		return nil, err
	}

	txns, err = s.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PlacementResult{
		OrderID:      order.ID,
		DeliveryDate: order.DeliveryDate,
		Subtotal:     subtotal,
		Balance:      balanceOf(txns),
		Status:       "confirmed",
	}, nil
}

// SummarizeTomorrow consolidates the line items of orders due literally
// tomorrow (now + 1 day, independent of the cutoff hour) that are still
// placed or packed, grouped by product.
func (s *orderService) SummarizeTomorrow(ctx context.Context, now time.Time) (*FulfillmentSummary, error) {
	date := DateString(now.AddDate(0, 0, 1))
	orders, err := s.store.OrdersByDeliveryDate(ctx, date, []string{domain.OrderPlaced, domain.OrderPacked})
	if err != nil {
		return nil, err
	}

	items := make([]SummaryItem, 0)
	index := make(map[uint]int)
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.ProductID]
			if !ok {
				// Name comes from the first line encountered for the product.
				index[it.ProductID] = len(items)
				items = append(items, SummaryItem{ProductID: it.ProductID, Name: it.Name})
				i = index[it.ProductID]
			}
			items[i].TotalQty += it.Qty
		}
	}

	return &FulfillmentSummary{
		Date:       date,
		Items:      items,
		OrderCount: len(orders),
	}, nil
}
