package domain

// Order statuses. New orders start as placed; nothing in this service
// advances the status, fulfillment tooling does that out of band.
const (
	OrderPlaced    = "placed"
	OrderPacked    = "packed"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order Model
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID       uint        `gorm:"index;not null" json:"user_id"`          // Foreign key to the owning User
	Items        []OrderItem `json:"items"`                                  // Line items with snapshotted product data
	Subtotal     float64     `gorm:"not null" json:"subtotal"`               // Sum of line totals, rounded to 2 decimals
	DeliveryDate string      `gorm:"index;not null" json:"delivery_date"`    // Delivery date as YYYY-MM-DD
	Status       string      `gorm:"default:placed" json:"status"`           // placed, packed, delivered or cancelled
	CreatedAt    int64       `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}

// OrderItem Model. Name and Price are captured from the product at placement
// time so later catalog edits never change what a placed order shows.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`         // Primary key
	OrderID   uint    `gorm:"index;not null" json:"-"`     // Foreign key to the parent Order
	ProductID uint    `gorm:"not null" json:"product_id"`  // Product the line refers to
	Name      string  `gorm:"not null" json:"name"`        // Product name snapshot
	Price     float64 `gorm:"not null" json:"price"`       // Unit price snapshot
	Qty       int     `gorm:"not null" json:"qty"`         // Quantity, must be > 0
}
