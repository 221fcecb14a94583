// Package domain holds the plain data types shared by the store, service, and
// API layers.
package domain

import (
	"strings"
	"time"
)

// User represents an account in the system. Email is the sole login
// identifier; there is no separate username.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Stored hashed, never serialized
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (u *User) InitTimestamps() {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}

// NormalizeEmail lowercases the domain portion of an email address while
// preserving the local part verbatim ("Test2@Test.com" -> "Test2@test.com").
// The input is trimmed of surrounding whitespace. Addresses without an "@"
// are returned trimmed but otherwise unchanged.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
