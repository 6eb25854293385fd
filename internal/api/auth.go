package api

import (
	"micro_delivery/internal/domain" // Importing domain models
	"micro_delivery/internal/utils"  // Utility functions
	"net/http"                       // HTTP status codes
	"strings"                        // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`        // Display name must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be provided and valid
	Password string `json:"password" binding:"required"`    // Password must be provided
	Address  string `json:"address"`                        // Optional delivery address
	Phone    string `json:"phone"`                          // Optional contact phone
	Role     string `json:"role"`                           // Optional role, defaults to client
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the issued token
type AuthResponse struct {
	AccessToken string `json:"access_token"` // JWT token
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// UserPublic is the user shape returned to clients, without secrets
type UserPublic struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// isValidPassword checks if the password length is at least 8 characters
func isValidPassword(password string) bool {
	return len(password) >= 8
}

// RegisterHandler creates a new user account with a hashed password
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}
		email := strings.ToLower(req.Email)
		// Reject duplicate registrations up front for a clear message
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		role := req.Role
		if role == "" {
			role = "client"
		}
		user := domain.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hash),
			Address:      req.Address,
			Phone:        req.Phone,
			Role:         role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			// Unique index on email catches registration races
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusCreated, UserPublic{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
	}
}

// LoginHandler authenticates a user by email and password and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// MeHandler returns the authenticated caller's public profile
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}
		c.JSON(http.StatusOK, UserPublic{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
	}
}
