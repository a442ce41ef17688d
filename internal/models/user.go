package models

import (
	"database/sql"
	"time"
)

// User represents a user of the application.
// Includes username and password hash for authentication.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	CompanyName  sql.NullString `db:"company_name"`
	Role         string         `db:"role"`
	PasswordHash string         `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
