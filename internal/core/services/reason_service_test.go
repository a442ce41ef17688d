package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/core/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
)

type ReasonServiceTestSuite struct {
	suite.Suite
	mockReasonRepo *MockReasonRepository
	service        portssvc.ReasonSvcFacade
	userID         string
}

func (suite *ReasonServiceTestSuite) SetupTest() {
	suite.mockReasonRepo = new(MockReasonRepository)
	suite.service = services.NewReasonService(suite.mockReasonRepo)
	suite.userID = uuid.NewString()
}

func (suite *ReasonServiceTestSuite) TestCreateReason_Success() {
	ctx := context.Background()
	req := dto.CreateReasonRequest{Name: "Damaged", Description: "Product arrived damaged"}

	suite.mockReasonRepo.On("FindReasonByName", ctx, domain.ReasonName("Damaged")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReasonRepo.On("SaveReason", ctx, mock.MatchedBy(func(r domain.Reason) bool {
		return r.Name == "Damaged" && r.ReasonID != "" && r.CreatedBy == suite.userID
	})).Return(nil).Once()

	reason, err := suite.service.CreateReason(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReasonName("Damaged"), reason.Name)
	suite.mockReasonRepo.AssertExpectations(suite.T())
}

func (suite *ReasonServiceTestSuite) TestCreateReason_DuplicateName() {
	ctx := context.Background()
	existing := &domain.Reason{ReasonID: uuid.NewString(), Name: domain.ReasonOutdated}

	suite.mockReasonRepo.On("FindReasonByName", ctx, domain.ReasonOutdated).Return(existing, nil).Once()

	reason, err := suite.service.CreateReason(ctx, dto.CreateReasonRequest{Name: string(domain.ReasonOutdated)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(reason)
	suite.mockReasonRepo.AssertNotCalled(suite.T(), "SaveReason", mock.Anything, mock.Anything)
}

func (suite *ReasonServiceTestSuite) TestDeleteReason_BlockedWhileReferenced() {
	ctx := context.Background()
	reasonID := uuid.NewString()

	suite.mockReasonRepo.On("FindReasonByID", ctx, reasonID).Return(&domain.Reason{ReasonID: reasonID, Name: domain.ReasonReturnable}, nil).Once()
	suite.mockReasonRepo.On("CountItemsReferencing", ctx, reasonID).Return(int64(7), nil).Once()

	err := suite.service.DeleteReason(ctx, reasonID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReasonInUse)
	suite.mockReasonRepo.AssertNotCalled(suite.T(), "DeleteReason", mock.Anything, mock.Anything)
}

func (suite *ReasonServiceTestSuite) TestDeleteReason_Unreferenced() {
	ctx := context.Background()
	reasonID := uuid.NewString()

	suite.mockReasonRepo.On("FindReasonByID", ctx, reasonID).Return(&domain.Reason{ReasonID: reasonID, Name: domain.ReasonReturnable}, nil).Once()
	suite.mockReasonRepo.On("CountItemsReferencing", ctx, reasonID).Return(int64(0), nil).Once()
	suite.mockReasonRepo.On("DeleteReason", ctx, reasonID).Return(nil).Once()

	err := suite.service.DeleteReason(ctx, reasonID, suite.userID)

	suite.Require().NoError(err)
	suite.mockReasonRepo.AssertExpectations(suite.T())
}

func TestReasonServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReasonServiceTestSuite))
}
