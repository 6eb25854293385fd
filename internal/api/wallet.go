package api

import (
	"context"                         // Context for Redis operations
	"micro_delivery/internal/service" // Wallet service
	"micro_delivery/internal/utils"   // Cache helpers
	"net/http"                        // HTTP status codes
	"strconv"                         // String conversion
	"time"                            // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// TopUpRequest credits a user's wallet
type TopUpRequest struct {
	UserID uint    `json:"user_id" binding:"required"`     // Wallet owner
	Amount float64 `json:"amount" binding:"required,gt=0"` // Credit amount, must be positive
	Note   string  `json:"note"`                           // Optional note on the transaction
}

// balanceResponse is the cached wallet balance shape
type balanceResponse struct {
	UserID  uint    `json:"user_id"`
	Balance float64 `json:"balance"`
}

// BalanceHandler returns the user's derived wallet balance. The balance is
// a fold over the transaction log; a short-lived redis entry spares the
// recomputation on hot reads.
func BalanceHandler(wallets service.WalletService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("user_id")
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		ctx := context.Background()
		cacheKey := utils.BalanceCacheKey(uint(userID))
		var cached balanceResponse
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		balance, err := wallets.Balance(c.Request.Context(), uint(userID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute balance"})
			return
		}
		resp := balanceResponse{UserID: uint(userID), Balance: balance}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 30*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}

// TopUpHandler appends a credit transaction to the owner's log and returns
// the fresh balance. Only the owner or an admin may top up a wallet.
func TopUpHandler(wallets service.WalletService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TopUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		if !canActFor(c, req.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed to top up this wallet"})
			return
		}
		txnID, newBalance, err := wallets.TopUp(c.Request.Context(), req.UserID, req.Amount, req.Note)
		if err != nil {
			if err == service.ErrInvalidAmount {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,
				"amount":  req.Amount,
				"error":   err.Error(),
			}).Error("Top-up failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Top-up failed"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        req.UserID,
			"amount":         req.Amount,
			"transaction_id": txnID,
			"type":           "credit",
		}).Info("Wallet top-up")
		// The log changed, the cached balance is stale
		_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceCacheKey(req.UserID))
		c.JSON(http.StatusOK, gin.H{"transaction_id": txnID, "new_balance": newBalance})
	}
}
