package domain

// Transaction kinds. The transaction log is append-only: rows are never
// updated or deleted, and a user's wallet balance is always derived from it.
const (
	TxnCredit = "credit"
	TxnDebit  = "debit"
)

// Transaction Model
type Transaction struct {
	ID        uint    `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID    uint    `gorm:"index;not null" json:"user_id"`          // Foreign key to the owning User
	Type      string  `gorm:"not null" json:"type"`                   // Transaction kind: credit or debit
	Amount    float64 `gorm:"not null" json:"amount"`                 // Amount, always positive; sign implied by kind
	OrderID   *uint   `json:"order_id,omitempty"`                     // Optional reference to the Order paid by a debit
	Note      string  `json:"note"`                                   // Free-text note
	CreatedAt int64   `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}
