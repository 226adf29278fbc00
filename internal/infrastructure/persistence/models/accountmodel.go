package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountModel represents the database persistence model for accounts.
// This is the anti-corruption layer between domain and database.
type AccountModel struct {
	ID                     uint    `gorm:"primarykey"`
	SID                    string  `gorm:"uniqueIndex;not null;size:32"`
	Email                  string  `gorm:"uniqueIndex;not null;size:255"`
	PendingEmail           *string `gorm:"size:255"`
	Role                   string  `gorm:"not null;default:guest;size:20"`
	PasswordHash           *string `gorm:"size:255"`
	EmailVerified          bool    `gorm:"default:false"`
	TokenVersion           int     `gorm:"not null;default:0"`
	TwoFactorSecret        *string `gorm:"size:255"`
	TwoFactorEnabled       bool    `gorm:"default:false"`
	PasswordResetToken     *string `gorm:"size:255;index:idx_password_reset_token"`
	PasswordResetExpiresAt *time.Time
	Version                int `gorm:"not null;default:1"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// BeforeCreate hook for GORM
func (a *AccountModel) BeforeCreate(tx *gorm.DB) error {
	if a.Role == "" {
		a.Role = "guest"
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
