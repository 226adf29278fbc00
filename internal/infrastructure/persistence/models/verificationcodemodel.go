package models

import "time"

// VerificationCodeModel represents the database persistence model for
// email-delivered verification codes. At most one row exists per
// (account, kind) pair.
type VerificationCodeModel struct {
	ID         uint      `gorm:"primarykey"`
	AccountID  uint      `gorm:"not null;uniqueIndex:idx_account_kind"`
	Kind       string    `gorm:"not null;size:32;uniqueIndex:idx_account_kind"`
	Code       string    `gorm:"not null;size:12"`
	Metadata   string    `gorm:"size:255"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	LastSentAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (VerificationCodeModel) TableName() string {
	return "verification_codes"
}
