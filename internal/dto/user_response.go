package dto

import (
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string `json:"userID"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName,omitempty"`
	Role        string `json:"role"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		CompanyName: user.CompanyName,
		Role:        string(user.Role),
	}
}
