package domain

import "time"

// APIToken is a long-lived credential issued to a pharmacy system integration.
// Only the hash is stored; the plaintext token is shown once at creation.
type APIToken struct {
	ID         string     `json:"id"` // Primary Key (UUID)
	UserID     string     `json:"userID"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
