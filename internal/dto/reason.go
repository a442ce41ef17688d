package dto

import (
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
)

// CreateReasonRequest defines the data needed to add a classification reason.
type CreateReasonRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ReasonResponse defines the data returned for a reason.
type ReasonResponse struct {
	ReasonID    string `json:"reasonID"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListReasonsResponse wraps the list of reasons.
type ListReasonsResponse struct {
	Reasons []ReasonResponse `json:"reasons"`
}

// ToReasonResponse converts a domain.Reason to ReasonResponse DTO.
func ToReasonResponse(r *domain.Reason) ReasonResponse {
	return ReasonResponse{
		ReasonID:    r.ReasonID,
		Name:        string(r.Name),
		Description: r.Description,
	}
}

// ToListReasonsResponse converts a slice of domain.Reason to the list DTO.
func ToListReasonsResponse(reasons []domain.Reason) ListReasonsResponse {
	res := make([]ReasonResponse, len(reasons))
	for i := range reasons {
		res[i] = ToReasonResponse(&reasons[i])
	}
	return ListReasonsResponse{Reasons: res}
}
