package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aula-lms/aula/internal/shared/biztime"
	"github.com/mileusna/useragent"
)

// Session records one authenticated device for an account. Sessions are
// bookkeeping, not authority: tokens stay valid or die by the account's
// token version, and the session list exists so the holder can see and
// name what is signed in where.
type Session struct {
	id         string
	accountID  uint
	ipAddress  string
	userAgent  string
	browser    string
	os         string
	device     string
	createdAt  time.Time
	lastUsedAt time.Time
}

// NewSession creates a session for an account from the raw request
// metadata. The user agent string is parsed into browser, OS and device
// descriptions for display; the raw value is kept for fingerprinting.
func NewSession(accountID uint, ipAddress, rawUserAgent string) (*Session, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("account ID cannot be zero")
	}

	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	browser, os, device := describeUserAgent(rawUserAgent)

	now := biztime.NowUTC()
	return &Session{
		id:         id,
		accountID:  accountID,
		ipAddress:  ipAddress,
		userAgent:  rawUserAgent,
		browser:    browser,
		os:         os,
		device:     device,
		createdAt:  now,
		lastUsedAt: now,
	}, nil
}

// Reconstruct rebuilds a session from persistence.
func Reconstruct(id string, accountID uint, ipAddress, userAgent, browser, os, device string, createdAt, lastUsedAt time.Time) *Session {
	return &Session{
		id:         id,
		accountID:  accountID,
		ipAddress:  ipAddress,
		userAgent:  userAgent,
		browser:    browser,
		os:         os,
		device:     device,
		createdAt:  createdAt,
		lastUsedAt: lastUsedAt,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// AccountID returns the owning account's internal ID
func (s *Session) AccountID() uint {
	return s.accountID
}

// IPAddress returns the IP the session was created from
func (s *Session) IPAddress() string {
	return s.ipAddress
}

// UserAgent returns the raw user agent string
func (s *Session) UserAgent() string {
	return s.userAgent
}

// Browser returns the parsed browser description
func (s *Session) Browser() string {
	return s.browser
}

// OS returns the parsed operating system description
func (s *Session) OS() string {
	return s.os
}

// Device returns the parsed device description
func (s *Session) Device() string {
	return s.device
}

// CreatedAt returns when the session was created
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastUsedAt returns when the session last refreshed its tokens
func (s *Session) LastUsedAt() time.Time {
	return s.lastUsedAt
}

// Touch records activity on the session.
func (s *Session) Touch() {
	s.lastUsedAt = biztime.NowUTC()
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func describeUserAgent(raw string) (browser, os, device string) {
	if raw == "" {
		return "Unknown", "Unknown", "Unknown"
	}

	ua := useragent.Parse(raw)

	browser = ua.Name
	if ua.Version != "" {
		browser = fmt.Sprintf("%s %s", ua.Name, ua.Version)
	}
	if browser == "" {
		browser = "Unknown"
	}

	os = ua.OS
	if ua.OSVersion != "" {
		os = fmt.Sprintf("%s %s", ua.OS, ua.OSVersion)
	}
	if os == "" {
		os = "Unknown"
	}

	switch {
	case ua.Mobile:
		device = "Mobile"
	case ua.Tablet:
		device = "Tablet"
	case ua.Desktop:
		device = "Desktop"
	case ua.Bot:
		device = "Bot"
	default:
		device = "Unknown"
	}
	if ua.Device != "" {
		device = ua.Device
	}

	return browser, os, device
}
