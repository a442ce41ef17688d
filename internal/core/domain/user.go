package domain

import "time"

// UserRole controls which API surfaces a user may reach.
type UserRole string

const (
	RoleUser     UserRole = "user"     // Pharmacy staff submitting returns
	RoleReviewer UserRole = "reviewer" // Processing-center reviewer
	RoleAdmin    UserRole = "admin"
)

// User represents an account in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	CompanyName  string   `json:"companyName,omitempty"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete

	// Refresh token state, managed by the auth service.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// CanReview reports whether the user may perform reviewer actions.
func (u User) CanReview() bool {
	return u.Role == RoleReviewer || u.Role == RoleAdmin
}
