package service

import (
	"context"

	"micro_delivery/internal/domain"
)

// Store is the record access the services need. The gorm implementation
// lives in internal/repository; tests supply in-memory fakes.
type Store interface {
	// ProductByID returns the product or (nil, nil) when no such product exists.
	ProductByID(ctx context.Context, id uint) (*domain.Product, error)
	// TransactionsByUser returns every transaction of the user, any order.
	TransactionsByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
	// CreateTransaction appends a single transaction to the log.
	CreateTransaction(ctx context.Context, txn *domain.Transaction) error
	// CreatePlacedOrder writes the order and its debit transaction
	// atomically, stamping the debit with the generated order id. Either
	// both rows are committed or neither is.
	CreatePlacedOrder(ctx context.Context, order *domain.Order, debit *domain.Transaction) error
	// OrdersByDeliveryDate returns orders stored with the given delivery
	// date (YYYY-MM-DD) whose status is one of statuses, items included.
	OrdersByDeliveryDate(ctx context.Context, date string, statuses []string) ([]domain.Order, error)
}
