package api

import (
	"context"                        // Context for Redis operations
	"micro_delivery/internal/domain" // Importing domain models
	"micro_delivery/internal/utils"  // Cache helpers
	"net/http"                       // HTTP status codes
	"strconv"                        // String conversion
	"time"                           // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ProductIn is the admin payload for creating a product
type ProductIn struct {
	Name      string   `json:"name" binding:"required"`        // Product name must be provided
	Price     *float64 `json:"price" binding:"required,gte=0"` // Unit price, zero allowed
	Category  string   `json:"category"`                       // Catalog category
	ImageURL  string   `json:"image_url"`                      // Optional image reference
	Available *bool    `json:"available"`                      // Availability, defaults to true
}

// ProductUpdate is the admin payload for a partial product update
type ProductUpdate struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price" binding:"omitempty,gte=0"`
	Category  *string  `json:"category"`
	ImageURL  *string  `json:"image_url"`
	Available *bool    `json:"available"`
}

// ListProductsHandler returns the catalog, cached in redis for a minute
func ListProductsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.Product
		if found, err := utils.GetCache(ctx, rdb, utils.ProductsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var products []domain.Product
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.ProductsCacheKey, products, 60*time.Second)
		c.JSON(http.StatusOK, products)
	}
}

// CreateProductHandler adds a product to the catalog (admin only)
func CreateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductIn
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		available := true
		if req.Available != nil {
			available = *req.Available
		}
		product := domain.Product{
			Name:      req.Name,
			Price:     *req.Price,
			Category:  req.Category,
			ImageURL:  req.ImageURL,
			Available: available,
		}
		if err := db.Create(&product).Error; err != nil {
			logrus.WithFields(logrus.Fields{"name": req.Name, "error": err.Error()}).Error("Failed to create product")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProductsCacheKey)
		c.JSON(http.StatusCreated, gin.H{"id": product.ID})
	}
}

// UpdateProductHandler replaces the provided fields of a product (admin
// only). Placed orders are unaffected: they carry their own name and price
// snapshots.
func UpdateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
			return
		}
		var req ProductUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
		}
		if req.Available != nil {
			updates["available"] = *req.Available
		}
		if len(updates) == 0 {
			c.JSON(http.StatusOK, gin.H{"updated": false})
			return
		}
		var product domain.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProductsCacheKey)
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

// DeleteProductHandler removes a product from the catalog (admin only)
func DeleteProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
			return
		}
		res := db.Delete(&domain.Product{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProductsCacheKey)
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
