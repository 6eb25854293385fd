package service

import (
	"context"
	"math"

	"micro_delivery/internal/domain"
)

// round2 rounds a monetary amount to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// balanceOf folds a transaction log into a wallet balance: credits add,
// debits subtract, unknown kinds are ignored. Order of transactions does not
// matter. The result is rounded to 2 decimal places.
func balanceOf(txns []domain.Transaction) float64 {
	balance := 0.0
	for _, t := range txns {
		switch t.Type {
		case domain.TxnCredit:
			balance += t.Amount
		case domain.TxnDebit:
			balance -= t.Amount
		}
	}
	return round2(balance)
}

// WalletService derives balances from the transaction log and records
// top-ups. There is no stored balance field anywhere: the log is the sole
// source of truth and the balance is recomputed on every call.
type WalletService interface {
	Balance(ctx context.Context, userID uint) (float64, error)
	TopUp(ctx context.Context, userID uint, amount float64, note string) (txnID uint, newBalance float64, err error)
}

type walletService struct {
	store Store
}

// NewWalletService creates a WalletService backed by the given store.
func NewWalletService(store Store) WalletService {
	return &walletService{store: store}
}

func (s *walletService) Balance(ctx context.Context, userID uint) (float64, error) {
	txns, err := s.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return balanceOf(txns), nil
}

func (s *walletService) TopUp(ctx context.Context, userID uint, amount float64, note string) (uint, float64, error) {
	if amount <= 0 {
		return 0, 0, ErrInvalidAmount
	}
	if note == "" {
		note = "Top-up"
	}
	txn := &domain.Transaction{
		UserID: userID,
		Type:   domain.TxnCredit,
		Amount: amount,
		Note:   note,
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return 0, 0, err
	}
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return txn.ID, balance, nil
}
