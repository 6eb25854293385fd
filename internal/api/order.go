package api

import (
	"context"                         // Context for Redis operations
	"errors"                          // Error kind matching
	"micro_delivery/internal/service" // Order workflow
	"micro_delivery/internal/utils"   // Cache helpers
	"net/http"                        // HTTP status codes
	"time"                            // Server time

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// PlaceOrderRequest is the placement payload: product ids and quantities
// only, prices always come from the catalog.
type PlaceOrderRequest struct {
	UserID uint                       `json:"user_id" binding:"required"`
	Items  []service.OrderItemRequest `json:"items" binding:"dive"`
}

// PlaceOrderHandler runs the order placement workflow for the caller. Only
// the order's user or an admin may place it.
func PlaceOrderHandler(orders service.OrderService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		if !canActFor(c, req.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed to place order for this user"})
			return
		}

		result, err := orders.PlaceOrder(c.Request.Context(), req.UserID, req.Items)
		if err != nil {
			var notFound *service.ProductNotFoundError
			var unavailable *service.ProductUnavailableError
			var insufficient *service.InsufficientFundsError
			switch {
			case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrInvalidQty):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.As(err, &notFound):
				c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			case errors.As(err, &unavailable):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.As(err, &insufficient):
				// Recoverable: the client is expected to top up and retry
				c.JSON(http.StatusPaymentRequired, gin.H{
					"message":        insufficient.Error(),
					"required_topup": insufficient.RequiredTopup,
					"balance":        insufficient.Balance,
					"subtotal":       insufficient.Subtotal,
				})
			default:
				logrus.WithFields(logrus.Fields{
					"user_id": req.UserID,
					"error":   err.Error(),
				}).Error("Order placement failed")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order"})
			}
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":       req.UserID,
			"order_id":      result.OrderID,
			"subtotal":      result.Subtotal,
			"delivery_date": result.DeliveryDate,
		}).Info("Order placed")
		// The debit changed the log, the cached balance is stale
		_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceCacheKey(req.UserID))
		c.JSON(http.StatusCreated, result)
	}
}

// SummaryHandler returns the next-morning fulfillment summary (admin only):
// tomorrow's deliverable orders consolidated by product.
func SummaryHandler(orders service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := orders.SummarizeTomorrow(c.Request.Context(), time.Now())
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Fulfillment summary failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// ConfigHandler exposes the server time, the configured cutoff hour and the
// delivery date an order placed right now would get.
func ConfigHandler(cutoffHour int) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		c.JSON(http.StatusOK, gin.H{
			"server_time":            now.Format(time.RFC3339),
			"cutoff_hour":            cutoffHour,
			"expected_delivery_date": service.DateString(service.DeliveryDateFor(now, cutoffHour)),
		})
	}
}
