package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOrder rejects a placement with no line items.
	ErrEmptyOrder = errors.New("No items in order")
	// ErrInvalidQty rejects a line item with a zero or negative quantity.
	ErrInvalidQty = errors.New("Item quantity must be positive")
	// ErrInvalidAmount rejects a top-up with a zero or negative amount.
	ErrInvalidAmount = errors.New("Amount must be positive")
)

// ProductNotFoundError reports an order line referencing an unknown product.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product %d not found", e.ProductID)
}

// ProductUnavailableError reports an order line referencing a product that
// exists but is currently not available for ordering.
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("Product %s unavailable", e.Name)
}

// InsufficientFundsError reports a wallet that cannot cover an order's
// subtotal. It carries the shortfall so the client can top up and retry.
type InsufficientFundsError struct {
	RequiredTopup float64 `json:"required_topup"` // Amount missing, rounded to 2 decimals
	Balance       float64 `json:"balance"`        // Balance at check time
	Subtotal      float64 `json:"subtotal"`       // Subtotal the wallet had to cover
}

func (e *InsufficientFundsError) Error() string {
	return "Insufficient wallet balance"
}
