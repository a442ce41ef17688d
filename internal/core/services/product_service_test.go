package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/core/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
)

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	service         portssvc.ProductSvcFacade
	userID          string
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockProductRepo)
	suite.userID = uuid.NewString()
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		NDC:             "0002-1234-01",
		DrugName:        "Testozol",
		Manufacturer:    "PharmaCo",
		BaseCreditValue: decimal.RequireFromString("12.50"),
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.ProductRecord) bool {
		return p.NDC == req.NDC && p.BaseCreditValue.Equal(req.BaseCreditValue) && p.CreatedBy == suite.userID
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(req.NDC, product.NDC)
	suite.False(product.IsPolicyRestricted())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativeCreditRejected() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		NDC:             "0002-1234-01",
		DrugName:        "Testozol",
		Manufacturer:    "PharmaCo",
		BaseCreditValue: decimal.RequireFromString("-1"),
	}

	product, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(product)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestGetProductByNDC_NotFound() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByNDC", ctx, "0000-0000-00").Return(nil, apperrors.ErrNotFound).Once()

	product, err := suite.service.GetProductByNDC(ctx, "0000-0000-00")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(product)
}

func (suite *ProductServiceTestSuite) TestListProducts_DefaultsLimit() {
	ctx := context.Background()
	records := []domain.ProductRecord{{NDC: "0002-1234-01", DrugName: "Testozol", Manufacturer: "PharmaCo"}}

	suite.mockProductRepo.On("ListProducts", ctx, 20, 0).Return(records, nil).Once()

	resp, err := suite.service.ListProducts(ctx, dto.ListProductsParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Products, 1)
	suite.Equal("0002-1234-01", resp.Products[0].NDC)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
