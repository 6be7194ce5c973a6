package domain

import "time"

// User Model. PasswordHash is a bcrypt hash, never serialized. Disabled
// accounts cannot authenticate. IsActive carries no column default, so
// creators set it explicitly and a false value persists as written.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	PhoneNumber  *string   `json:"phone_number"`
	IsActive     bool      `json:"is_active"`
	DateJoined   time.Time `gorm:"autoCreateTime" json:"date_joined"`
	Wallet       Wallet    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
