package domain

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`                   // Primary key
	Name         string `gorm:"not null" json:"name"`                   // Display name
	Email        string `gorm:"unique;not null" json:"email"`           // Unique email, used for login
	PasswordHash string `gorm:"not null" json:"-"`                      // Hashed password, never serialized
	Address      string `json:"address"`                                // Delivery address
	Phone        string `json:"phone"`                                  // Contact phone
	Role         string `gorm:"default:client" json:"role"`             // Role: client or admin
	IsActive     bool   `gorm:"default:true" json:"is_active"`          // Active flag
	CreatedAt    int64  `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}
