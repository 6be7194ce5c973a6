package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"walletapi/internal/domain"     // Domain models
	"walletapi/internal/middleware" // Auth context helpers
)

// CardCreateRequest is the payload for linking a new card
type CardCreateRequest struct {
	CardNumber     string  `json:"card_number" binding:"required,min=13,max=19"` // PAN or account number
	CardType       string  `json:"card_type" binding:"required,oneof=credit debit bank"`
	CardHolderName string  `json:"card_holder_name" binding:"required"`
	ExpiryDate     *string `json:"expiry_date"` // Optional MM/YYYY string
	BankName       string  `json:"bank_name" binding:"required"`
	IsPrimary      bool    `json:"is_primary"` // Whether this becomes the primary card
}

// CardUpdateRequest is the partial-update payload; nil fields are untouched
type CardUpdateRequest struct {
	CardHolderName *string `json:"card_holder_name"`
	ExpiryDate     *string `json:"expiry_date"`
	IsPrimary      *bool   `json:"is_primary"`
}

// findOwnedCard loads a card by id scoped to its owner
func findOwnedCard(db *gorm.DB, userID uint, cardID string) (*domain.Card, error) {
	var card domain.Card
	err := db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error
	return &card, err
}

// clearPrimary unsets is_primary on every card of the user. Used inside the
// transactions that set a new primary so at most one card is ever primary.
func clearPrimary(tx *gorm.DB, userID uint) error {
	return tx.Model(&domain.Card{}).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Update("is_primary", false).Error
}

// ListCardsHandler returns the user's cards, primary first then newest
func ListCardsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var cards []domain.Card
		if err := db.Where("user_id = ?", user.ID).
			Order("is_primary desc, created_at desc").Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cards"})
			return
		}
		c.JSON(http.StatusOK, cards)
	}
}

// CreateCardHandler links a new card, clearing any previous primary flag when
// the new card is primary
func CreateCardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req CardCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Explicit field-by-field mapping; nothing else from the payload lands here
		card := domain.Card{
			UserID:         user.ID,            // Owning user
			CardNumber:     req.CardNumber,     // PAN or account number
			CardType:       req.CardType,       // credit, debit or bank
			CardHolderName: req.CardHolderName, // Holder name
			ExpiryDate:     req.ExpiryDate,     // Optional expiry
			BankName:       req.BankName,       // Issuing bank
			IsPrimary:      req.IsPrimary,      // Primary flag
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			// Setting a new primary atomically clears the previous one
			if card.IsPrimary {
				if err := clearPrimary(tx, user.ID); err != nil {
					return err
				}
			}
			return tx.Create(&card).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating card"})
			return
		}
		c.JSON(http.StatusCreated, card)
	}
}

// GetCardHandler returns one of the user's cards by id
func GetCardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		card, err := findOwnedCard(db, user.ID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Card not found"})
			return
		}
		c.JSON(http.StatusOK, card)
	}
}

// UpdateCardHandler applies a partial update to one of the user's cards
func UpdateCardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		card, err := findOwnedCard(db, user.ID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Card not found"})
			return
		}
		var req CardUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Apply only the provided fields
		if req.CardHolderName != nil {
			card.CardHolderName = *req.CardHolderName
		}
		if req.ExpiryDate != nil {
			card.ExpiryDate = req.ExpiryDate
		}
		if req.IsPrimary != nil {
			card.IsPrimary = *req.IsPrimary
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			// Setting a new primary atomically clears the previous one
			if req.IsPrimary != nil && *req.IsPrimary {
				if err := clearPrimary(tx, user.ID); err != nil {
					return err
				}
			}
			return tx.Save(card).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating card"})
			return
		}
		c.JSON(http.StatusOK, card)
	}
}

// DeleteCardHandler removes one of the user's cards
func DeleteCardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		card, err := findOwnedCard(db, user.ID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Card not found"})
			return
		}
		if err := db.Delete(card).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete card"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
	}
}
