package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"walletapi/internal/wallet" // Ledger errors
)

// writeWalletError maps ledger errors to HTTP responses. Business-rule
// violations answer 400 with a specific message, lookups 404, anything
// unexpected a generic failure with no internals in the body.
func writeWalletError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient balance"})
	case errors.Is(err, wallet.ErrNonPositiveAmount):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Amount must be greater than zero"})
	case errors.Is(err, wallet.ErrInvalidTransactionType):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transaction type"})
	case errors.Is(err, wallet.ErrSelfTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot send money to yourself"})
	case errors.Is(err, wallet.ErrAmountRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Amount is required"})
	case errors.Is(err, wallet.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "QR code has expired"})
	case errors.Is(err, wallet.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "QR code not found or inactive"})
	case errors.Is(err, wallet.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipient not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
