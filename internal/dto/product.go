package dto

import (
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to register an NDC.
type CreateProductRequest struct {
	NDC             string          `json:"ndc" binding:"required,ndc"`
	DrugName        string          `json:"drugName" binding:"required"`
	Manufacturer    string          `json:"manufacturer" binding:"required"`
	PolicyCode      string          `json:"policyCode" binding:"omitempty,oneof=X"`
	BaseCreditValue decimal.Decimal `json:"baseCreditValue"`
}

// ProductResponse defines the data returned for a product record.
type ProductResponse struct {
	NDC             string          `json:"ndc"`
	DrugName        string          `json:"drugName"`
	Manufacturer    string          `json:"manufacturer"`
	PolicyCode      string          `json:"policyCode,omitempty"`
	BaseCreditValue decimal.Decimal `json:"baseCreditValue"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToProductResponse converts a domain.ProductRecord to ProductResponse DTO.
func ToProductResponse(p *domain.ProductRecord) ProductResponse {
	return ProductResponse{
		NDC:             p.NDC,
		DrugName:        p.DrugName,
		Manufacturer:    p.Manufacturer,
		PolicyCode:      p.PolicyCode,
		BaseCreditValue: p.BaseCreditValue,
		CreatedAt:       p.CreatedAt,
		LastUpdatedAt:   p.LastUpdatedAt,
	}
}

// ToListProductsResponse converts a slice of domain.ProductRecord to the list DTO.
func ToListProductsResponse(products []domain.ProductRecord) ListProductsResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return ListProductsResponse{Products: res}
}
