package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/core/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
)

// --- Mock Repositories ---

type MockSubmissionRepository struct {
	mock.Mock
}

var _ portsrepo.SubmissionRepositoryWithTx = (*MockSubmissionRepository)(nil)

func (m *MockSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ListSubmissions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Submission, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var subs []domain.Submission
	if args.Get(0) != nil {
		subs = args.Get(0).([]domain.Submission)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return subs, token, args.Error(2)
}

func (m *MockSubmissionRepository) FindItemsBySubmissionID(ctx context.Context, submissionID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockSubmissionRepository) FindStatusHistory(ctx context.Context, submissionID string) ([]domain.StatusUpdate, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusUpdate), args.Error(1)
}

func (m *MockSubmissionRepository) SaveSubmission(ctx context.Context, submission domain.Submission, items []domain.LineItem, initial domain.StatusUpdate) error {
	args := m.Called(ctx, submission, items, initial)
	return args.Error(0)
}

func (m *MockSubmissionRepository) AppendItems(ctx context.Context, submissionID string, items []domain.LineItem) error {
	args := m.Called(ctx, submissionID, items)
	return args.Error(0)
}

func (m *MockSubmissionRepository) TransitionStatus(ctx context.Context, submissionID string, expectedStatus *domain.SubmissionStatus, update domain.StatusUpdate, trackingNumber *string, statusUpdatedAt time.Time) error {
	args := m.Called(ctx, submissionID, expectedStatus, update, trackingNumber, statusUpdatedAt)
	return args.Error(0)
}

func (m *MockSubmissionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockSubmissionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSubmissionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByNDC(ctx context.Context, ndc string) (*domain.ProductRecord, error) {
	args := m.Called(ctx, ndc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductRecord), args.Error(1)
}

func (m *MockProductRepository) FindProductsByNDCs(ctx context.Context, ndcs []string) (map[string]domain.ProductRecord, error) {
	args := m.Called(ctx, ndcs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ProductRecord), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.ProductRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductRecord), args.Error(1)
}

func (m *MockProductRepository) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.ProductRecord) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

type MockReasonRepository struct {
	mock.Mock
}

var _ portsrepo.ReasonRepository = (*MockReasonRepository)(nil)

func (m *MockReasonRepository) SaveReason(ctx context.Context, reason domain.Reason) error {
	args := m.Called(ctx, reason)
	return args.Error(0)
}

func (m *MockReasonRepository) FindReasonByID(ctx context.Context, reasonID string) (*domain.Reason, error) {
	args := m.Called(ctx, reasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reason), args.Error(1)
}

func (m *MockReasonRepository) FindReasonByName(ctx context.Context, name domain.ReasonName) (*domain.Reason, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reason), args.Error(1)
}

func (m *MockReasonRepository) ListReasons(ctx context.Context) ([]domain.Reason, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reason), args.Error(1)
}

func (m *MockReasonRepository) CountReasons(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReasonRepository) CountItemsReferencing(ctx context.Context, reasonID string) (int64, error) {
	args := m.Called(ctx, reasonID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReasonRepository) DeleteReason(ctx context.Context, reasonID string) error {
	args := m.Called(ctx, reasonID)
	return args.Error(0)
}

// --- Test Suite ---

type SubmissionServiceTestSuite struct {
	suite.Suite
	mockSubmissionRepo *MockSubmissionRepository
	mockProductRepo    *MockProductRepository
	mockReasonRepo     *MockReasonRepository
	service            portssvc.SubmissionSvcFacade

	userID   string
	user     domain.User
	reviewer domain.User
	reasons  []domain.Reason
	product  domain.ProductRecord
}

func (suite *SubmissionServiceTestSuite) SetupTest() {
	suite.mockSubmissionRepo = new(MockSubmissionRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockReasonRepo = new(MockReasonRepository)
	suite.service = services.NewSubmissionService(suite.mockSubmissionRepo, suite.mockProductRepo, suite.mockReasonRepo)

	suite.userID = uuid.NewString()
	suite.user = domain.User{UserID: suite.userID, Username: "pharmacy1", Role: domain.RoleUser}
	suite.reviewer = domain.User{UserID: uuid.NewString(), Username: "carol", Role: domain.RoleReviewer}

	suite.reasons = domain.DefaultReasons()
	for i := range suite.reasons {
		suite.reasons[i].ReasonID = uuid.NewString()
	}

	suite.product = domain.ProductRecord{
		NDC:             "0002-1234-01",
		DrugName:        "Testozol",
		Manufacturer:    "PharmaCo",
		BaseCreditValue: decimal.RequireFromString("12.50"),
	}
}

// returnableDate is an expiration comfortably inside the eligibility window:
// past the 180-day minimum, under the 3-year maximum, under 12 months out.
func returnableDate() string {
	return time.Now().UTC().AddDate(0, 0, 300).Format("2006-01-02")
}

func (suite *SubmissionServiceTestSuite) TestCreateSubmission_SkipsBadRowsAndSaves() {
	ctx := context.Background()
	req := dto.CreateSubmissionRequest{
		Items: []dto.CreateLineItemRequest{
			{NDC: suite.product.NDC, Quantity: 10, ExpirationDate: returnableDate()},
			{NDC: "0009-0000-00", Quantity: 5, ExpirationDate: "not-a-date"},
		},
	}

	products := map[string]domain.ProductRecord{suite.product.NDC: suite.product}
	suite.mockProductRepo.On("FindProductsByNDCs", ctx, []string{suite.product.NDC, "0009-0000-00"}).Return(products, nil).Once()
	// Once for row resolution, once for building the response.
	suite.mockReasonRepo.On("ListReasons", ctx).Return(suite.reasons, nil).Twice()
	suite.mockSubmissionRepo.On("SaveSubmission", ctx, mock.AnythingOfType("domain.Submission"), mock.AnythingOfType("[]domain.LineItem"), mock.AnythingOfType("domain.StatusUpdate")).Return(nil).Once()

	resp, err := suite.service.CreateSubmission(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(string(domain.StatusDraft), resp.Submission.Status)
	suite.Equal(suite.userID, resp.Submission.UserID)
	suite.Require().Len(resp.Submission.Items, 1)
	suite.Equal(string(domain.EligibilityEligible), resp.Submission.Items[0].Status)
	suite.True(resp.Submission.Items[0].EstimatedCredit.GreaterThan(decimal.Zero))
	suite.True(resp.Submission.TotalEstimate.Equal(resp.Submission.Items[0].EstimatedCredit))
	suite.Require().Len(resp.SkippedRows, 1)
	suite.Equal(1, resp.SkippedRows[0].Row)
	suite.Equal("invalid expiration date", resp.SkippedRows[0].Reason)

	suite.mockSubmissionRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *SubmissionServiceTestSuite) TestCreateSubmission_UnknownNDCStillAccepted() {
	ctx := context.Background()
	req := dto.CreateSubmissionRequest{
		Items: []dto.CreateLineItemRequest{
			{NDC: "9999-9999-99", Quantity: 3, ExpirationDate: returnableDate()},
		},
	}

	suite.mockProductRepo.On("FindProductsByNDCs", ctx, []string{"9999-9999-99"}).Return(map[string]domain.ProductRecord{}, nil).Once()
	suite.mockReasonRepo.On("ListReasons", ctx).Return(suite.reasons, nil).Twice()
	suite.mockSubmissionRepo.On("SaveSubmission", ctx, mock.AnythingOfType("domain.Submission"), mock.AnythingOfType("[]domain.LineItem"), mock.AnythingOfType("domain.StatusUpdate")).Return(nil).Once()

	resp, err := suite.service.CreateSubmission(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Submission.Items, 1)
	suite.Equal(string(domain.EligibilityNDCNotFound), resp.Submission.Items[0].Status)
	suite.True(resp.Submission.Items[0].EstimatedCredit.IsZero())
	suite.Empty(resp.SkippedRows)
}

func (suite *SubmissionServiceTestSuite) TestCreateSubmission_AllRowsRejected() {
	ctx := context.Background()
	req := dto.CreateSubmissionRequest{
		Items: []dto.CreateLineItemRequest{
			{NDC: suite.product.NDC, Quantity: -4, ExpirationDate: returnableDate()},
		},
	}

	suite.mockProductRepo.On("FindProductsByNDCs", ctx, []string{suite.product.NDC}).Return(map[string]domain.ProductRecord{suite.product.NDC: suite.product}, nil).Once()
	suite.mockReasonRepo.On("ListReasons", ctx).Return(suite.reasons, nil).Once()

	resp, err := suite.service.CreateSubmission(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoAcceptedItems)
	suite.Nil(resp)
	suite.mockSubmissionRepo.AssertNotCalled(suite.T(), "SaveSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubmissionServiceTestSuite) TestImportItems_AppendsParsedRows() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	draft := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusDraft}

	csvData := strings.NewReader(
		"ndc,quantity,expiration_date\n" +
			suite.product.NDC + ",10," + returnableDate() + "\n" +
			"0009-0000-00,abc," + returnableDate() + "\n")

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(draft, nil).Once()
	suite.mockProductRepo.On("FindProductsByNDCs", ctx, []string{suite.product.NDC}).Return(map[string]domain.ProductRecord{suite.product.NDC: suite.product}, nil).Once()
	suite.mockReasonRepo.On("ListReasons", ctx).Return(suite.reasons, nil).Once()
	suite.mockSubmissionRepo.On("AppendItems", ctx, submissionID, mock.MatchedBy(func(items []domain.LineItem) bool {
		return len(items) == 1 && items[0].NDC == suite.product.NDC && items[0].Quantity == 10
	})).Return(nil).Once()

	resp, err := suite.service.ImportItems(ctx, submissionID, suite.userID, csvData)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Added)
	suite.Require().Len(resp.SkippedRows, 1)
	suite.Equal("quantity is not an integer", resp.SkippedRows[0].Reason)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *SubmissionServiceTestSuite) TestImportItems_RejectedWhenNotDraft() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	submitted := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusSubmitted}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(submitted, nil).Once()

	resp, err := suite.service.ImportItems(ctx, submissionID, suite.userID, strings.NewReader(""))

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.Nil(resp)
	suite.mockSubmissionRepo.AssertNotCalled(suite.T(), "AppendItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubmissionServiceTestSuite) TestGetSubmissionByID_OtherUsersSubmissionHidden() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	other := &domain.Submission{SubmissionID: submissionID, UserID: uuid.NewString(), Status: domain.StatusDraft}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(other, nil).Once()

	resp, err := suite.service.GetSubmissionByID(ctx, submissionID, &suite.user)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
}

func (suite *SubmissionServiceTestSuite) TestGetSubmissionByID_ReviewerSeesAnySubmission() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	sub := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusSubmitted}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(sub, nil).Once()
	suite.mockSubmissionRepo.On("FindItemsBySubmissionID", ctx, submissionID).Return([]domain.LineItem{}, nil).Once()
	suite.mockSubmissionRepo.On("FindStatusHistory", ctx, submissionID).Return([]domain.StatusUpdate{}, nil).Once()
	suite.mockReasonRepo.On("ListReasons", ctx).Return(suite.reasons, nil).Once()

	resp, err := suite.service.GetSubmissionByID(ctx, submissionID, &suite.reviewer)

	suite.Require().NoError(err)
	suite.Equal(submissionID, resp.SubmissionID)
}

func (suite *SubmissionServiceTestSuite) TestListSubmissions_ReviewerSpansAllUsers() {
	ctx := context.Background()

	suite.mockSubmissionRepo.On("ListSubmissions", ctx, "", 20, (*string)(nil)).Return([]domain.Submission{}, nil, nil).Once()

	resp, err := suite.service.ListSubmissions(ctx, &suite.reviewer, dto.ListSubmissionsParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Submissions)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *SubmissionServiceTestSuite) TestFinalizeSubmission_DraftTransitions() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	tracking := domain.TrackingNumberFor(submissionID)
	draft := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusDraft}
	finalized := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusSubmitted, TrackingNumber: tracking}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(draft, nil).Once()
	expected := domain.StatusDraft
	suite.mockSubmissionRepo.On("TransitionStatus", ctx, submissionID, &expected, mock.MatchedBy(func(u domain.StatusUpdate) bool {
		return u.NewStatus == domain.StatusSubmitted && u.OldStatus != nil && *u.OldStatus == domain.StatusDraft && u.UpdatedBy == domain.ActorUser
	}), &tracking, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(finalized, nil).Once()

	resp, err := suite.service.FinalizeSubmission(ctx, submissionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.StatusSubmitted), resp.Status)
	suite.Equal(tracking, resp.TrackingNumber)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *SubmissionServiceTestSuite) TestFinalizeSubmission_NonDraftIsNoOp() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	received := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusReceived}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(received, nil).Twice()

	resp, err := suite.service.FinalizeSubmission(ctx, submissionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.StatusReceived), resp.Status)
	suite.mockSubmissionRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubmissionServiceTestSuite) TestFinalizeSubmission_LostRaceReturnsCurrentState() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	draft := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusDraft}
	winner := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusSubmitted, TrackingNumber: domain.TrackingNumberFor(submissionID)}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(draft, nil).Once()
	suite.mockSubmissionRepo.On("TransitionStatus", ctx, submissionID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()
	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(winner, nil).Once()

	resp, err := suite.service.FinalizeSubmission(ctx, submissionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.StatusSubmitted), resp.Status)
}

func (suite *SubmissionServiceTestSuite) TestFinalizeSubmission_NotOwner() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	other := &domain.Submission{SubmissionID: submissionID, UserID: uuid.NewString(), Status: domain.StatusDraft}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(other, nil).Once()

	resp, err := suite.service.FinalizeSubmission(ctx, submissionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
}

func (suite *SubmissionServiceTestSuite) TestReviewSubmission_RecordsReviewerActor() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	submitted := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusSubmitted}
	credited := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusCredited}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(submitted, nil).Once()
	expected := domain.StatusSubmitted
	suite.mockSubmissionRepo.On("TransitionStatus", ctx, submissionID, &expected, mock.MatchedBy(func(u domain.StatusUpdate) bool {
		return u.NewStatus == domain.StatusCredited &&
			u.OldStatus != nil && *u.OldStatus == domain.StatusSubmitted &&
			u.UpdatedBy == domain.ReviewerActor(suite.reviewer.Username) &&
			u.Notes == "check issued"
	}), (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(credited, nil).Once()

	resp, err := suite.service.ReviewSubmission(ctx, submissionID, &suite.reviewer, dto.ReviewSubmissionRequest{NewStatus: "Credited", Notes: "check issued"})

	suite.Require().NoError(err)
	suite.Equal(string(domain.StatusCredited), resp.Status)
	suite.mockSubmissionRepo.AssertExpectations(suite.T())
}

func (suite *SubmissionServiceTestSuite) TestReviewSubmission_InvalidTarget() {
	ctx := context.Background()

	resp, err := suite.service.ReviewSubmission(ctx, uuid.NewString(), &suite.reviewer, dto.ReviewSubmissionRequest{NewStatus: "Draft"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidReviewStatus)
	suite.Nil(resp)
}

func (suite *SubmissionServiceTestSuite) TestReviewSubmission_RequiresReviewerRole() {
	ctx := context.Background()

	resp, err := suite.service.ReviewSubmission(ctx, uuid.NewString(), &suite.user, dto.ReviewSubmissionRequest{NewStatus: "Received"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(resp)
}

func (suite *SubmissionServiceTestSuite) TestReviewSubmission_ConflictPropagates() {
	ctx := context.Background()
	submissionID := uuid.NewString()
	submitted := &domain.Submission{SubmissionID: submissionID, UserID: suite.userID, Status: domain.StatusSubmitted}

	suite.mockSubmissionRepo.On("FindSubmissionByID", ctx, submissionID).Return(submitted, nil).Once()
	suite.mockSubmissionRepo.On("TransitionStatus", ctx, submissionID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	resp, err := suite.service.ReviewSubmission(ctx, submissionID, &suite.reviewer, dto.ReviewSubmissionRequest{NewStatus: "Received"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(resp)
}

func (suite *SubmissionServiceTestSuite) TestEstimateItem_EligibleProduct() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByNDC", ctx, suite.product.NDC).Return(&suite.product, nil).Once()

	resp, err := suite.service.EstimateItem(ctx, dto.EstimateItemRequest{
		NDC:            suite.product.NDC,
		Quantity:       10,
		ExpirationDate: returnableDate(),
	})

	suite.Require().NoError(err)
	suite.Equal(string(domain.EligibilityEligible), resp.Status)
	suite.True(resp.EstimatedCredit.GreaterThan(decimal.Zero))
}

func (suite *SubmissionServiceTestSuite) TestEstimateItem_UnknownNDC() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByNDC", ctx, "0000-0000-00").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.EstimateItem(ctx, dto.EstimateItemRequest{
		NDC:            "0000-0000-00",
		Quantity:       1,
		ExpirationDate: returnableDate(),
	})

	suite.Require().NoError(err)
	suite.Equal(string(domain.EligibilityNDCNotFound), resp.Status)
	suite.True(resp.EstimatedCredit.IsZero())
}

func TestSubmissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubmissionServiceTestSuite))
}
