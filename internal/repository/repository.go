package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm" // GORM ORM library

	"micro_delivery/internal/domain"
)

// Store implements service.Store over a gorm database handle.
type Store struct {
	db *gorm.DB
}

// New creates a Store over the given database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ProductByID fetches a product, returning (nil, nil) when it does not exist.
func (s *Store) ProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// TransactionsByUser returns the user's full transaction log.
func (s *Store) TransactionsByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// CreateTransaction appends one transaction to the log.
func (s *Store) CreateTransaction(ctx context.Context, txn *domain.Transaction) error {
	return s.db.WithContext(ctx).Create(txn).Error
}

// CreatePlacedOrder writes the order (items included) and its debit in one
// database transaction: a failure on the debit rolls back the order, so a
// placed order without its settlement can never be observed.
func (s *Store) CreatePlacedOrder(ctx context.Context, order *domain.Order, debit *domain.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err // Roll back
		}
		debit.OrderID = &order.ID
		if debit.Note == "" {
			debit.Note = fmt.Sprintf("Order %d payment", order.ID)
		}
		if err := tx.Create(debit).Error; err != nil {
			return err // Roll back
		}
		return nil // Commit
	})
}

// OrdersByDeliveryDate returns orders stored with the given delivery date
// and one of the given statuses, with their items preloaded.
func (s *Store) OrdersByDeliveryDate(ctx context.Context, date string, statuses []string) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("delivery_date = ? AND status IN ?", date, statuses).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
