package domain

// Product Model
type Product struct {
	ID        uint    `gorm:"primaryKey" json:"id"`                   // Primary key
	Name      string  `gorm:"not null" json:"name"`                   // Product name
	Price     float64 `gorm:"not null" json:"price"`                  // Unit price, must be >= 0
	Category  string  `json:"category"`                               // Catalog category
	ImageURL  string  `json:"image_url"`                              // Optional image reference
	Available bool    `gorm:"default:true" json:"available"`          // Availability flag
	CreatedAt int64   `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}
