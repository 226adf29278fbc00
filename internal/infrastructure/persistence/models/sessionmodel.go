package models

import "time"

// SessionModel represents the database persistence model for sessions.
type SessionModel struct {
	ID         string `gorm:"primarykey;size:64"`
	AccountID  uint   `gorm:"not null;index"`
	IPAddress  string `gorm:"size:45"`
	UserAgent  string `gorm:"size:512"`
	Browser    string `gorm:"size:100"`
	OS         string `gorm:"size:100"`
	Device     string `gorm:"size:100"`
	LastUsedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}
