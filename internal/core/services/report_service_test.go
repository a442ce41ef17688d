package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
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

type MockReportRepository struct {
	mock.Mock
}

var _ portsrepo.ReportRepositoryFacade = (*MockReportRepository)(nil)

func (m *MockReportRepository) FindReportByReturnNo(ctx context.Context, returnNo string) (*domain.ReturnReport, error) {
	args := m.Called(ctx, returnNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnReport), args.Error(1)
}

func (m *MockReportRepository) ListReports(ctx context.Context) ([]domain.ReturnReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnReport), args.Error(1)
}

func (m *MockReportRepository) FindBreakdownsByReportID(ctx context.Context, reportID string) ([]domain.ManufacturerBreakdown, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ManufacturerBreakdown), args.Error(1)
}

func (m *MockReportRepository) FindItemsByReportID(ctx context.Context, reportID string) ([]domain.ReturnItem, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnItem), args.Error(1)
}

func (m *MockReportRepository) Summarize(ctx context.Context) (*domain.ReportSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSummary), args.Error(1)
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report domain.ReturnReport, breakdowns []domain.ManufacturerBreakdown) error {
	args := m.Called(ctx, report, breakdowns)
	return args.Error(0)
}

func (m *MockReportRepository) SaveReturnItems(ctx context.Context, reportID string, items []domain.ReturnItem) error {
	args := m.Called(ctx, reportID, items)
	return args.Error(0)
}

func (m *MockReportRepository) ApplyPayment(ctx context.Context, returnNo string, amount decimal.Decimal, paymentDate time.Time) error {
	args := m.Called(ctx, returnNo, amount, paymentDate)
	return args.Error(0)
}

func (m *MockReportRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.CheckStatement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckStatement), args.Error(1)
}

func (m *MockReportRepository) ListStatements(ctx context.Context) ([]domain.CheckStatement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckStatement), args.Error(1)
}

func (m *MockReportRepository) SaveStatement(ctx context.Context, statement domain.CheckStatement, details []domain.CheckDetail) error {
	args := m.Called(ctx, statement, details)
	return args.Error(0)
}

func (m *MockReportRepository) UpdateStatementStatus(ctx context.Context, statementID string, status domain.CheckStatementStatus) error {
	args := m.Called(ctx, statementID, status)
	return args.Error(0)
}

func (m *MockReportRepository) SaveCategory(ctx context.Context, category domain.ReturnCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockReportRepository) ListCategories(ctx context.Context) ([]domain.ReturnCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnCategory), args.Error(1)
}

func (m *MockReportRepository) CountCategories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type ReportServiceTestSuite struct {
	suite.Suite
	mockReportRepo *MockReportRepository
	service        portssvc.ReportSvcFacade
	userID         string
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockReportRepo = new(MockReportRepository)
	suite.service = services.NewReportService(suite.mockReportRepo)
	suite.userID = uuid.NewString()
}

func (suite *ReportServiceTestSuite) TestCreateReport_Success() {
	ctx := context.Background()
	req := dto.CreateReportRequest{
		ReturnNo:    "RR-1001",
		InvoiceDate: "2026-08-15",
		ServiceType: "Standard",
		ERV:         decimal.RequireFromString("1500.00"),
		Breakdowns: []dto.CreateBreakdownRequest{
			{Manufacturer: "PharmaCo", ERV: decimal.RequireFromString("900.00")},
			{Manufacturer: "MediCorp", ERV: decimal.RequireFromString("600.00")},
		},
	}

	suite.mockReportRepo.On("SaveReport", ctx, mock.MatchedBy(func(r domain.ReturnReport) bool {
		return r.ReturnNo == "RR-1001" && r.ERV.Equal(req.ERV) && r.AmountPaid.IsZero()
	}), mock.MatchedBy(func(b []domain.ManufacturerBreakdown) bool {
		return len(b) == 2 && b[0].Manufacturer == "PharmaCo"
	})).Return(nil).Once()

	resp, err := suite.service.CreateReport(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("RR-1001", resp.ReturnNo)
	suite.True(resp.Outstanding.Equal(req.ERV))
	suite.Len(resp.Breakdowns, 2)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestCreateReport_NegativeERV() {
	ctx := context.Background()
	req := dto.CreateReportRequest{
		ReturnNo:    "RR-1002",
		InvoiceDate: "2026-08-15",
		ERV:         decimal.RequireFromString("-5"),
	}

	resp, err := suite.service.CreateReport(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
}

func (suite *ReportServiceTestSuite) TestImportReturnItems_ComputesExtendedPrice() {
	ctx := context.Background()
	report := &domain.ReturnReport{ReportID: uuid.NewString(), ReturnNo: "RR-1001"}

	csvData := strings.NewReader(
		"ndc,description,lot_no,exp_date,pkg_size,full_qty,partial_qty,unit_price,manufacturer\n" +
			"0002-1234-01,Testozol 10mg,LOT42,2027-01-31,100,2,50,0.25,PharmaCo\n" +
			"0003-5678-02,Medicorol,LOT7,2027-03-31,30,bad,0,1.00,MediCorp\n")

	suite.mockReportRepo.On("FindReportByReturnNo", ctx, "RR-1001").Return(report, nil).Once()
	suite.mockReportRepo.On("SaveReturnItems", ctx, report.ReportID, mock.MatchedBy(func(items []domain.ReturnItem) bool {
		// 2 full packages of 100 plus 50 partials at 0.25 each
		return len(items) == 1 && items[0].ExtendedPrice.Equal(decimal.RequireFromString("62.50"))
	})).Return(nil).Once()

	resp, err := suite.service.ImportReturnItems(ctx, "RR-1001", suite.userID, csvData)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Added)
	suite.Require().Len(resp.SkippedRows, 1)
	suite.Equal("full_qty is not an integer", resp.SkippedRows[0].Reason)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestRecordCheckStatement_AllocationsMustSumToCheckAmount() {
	ctx := context.Background()
	req := dto.CreateCheckStatementRequest{
		StatementNo: "ST-1",
		PaymentDate: "2026-08-20",
		CheckAmount: decimal.RequireFromString("100.00"),
		CheckNo:     "CHK-9",
		Details: []dto.CreateCheckDetailRequest{
			{ReturnNo: "RR-1001", Amount: decimal.RequireFromString("60.00")},
			{ReturnNo: "RR-1002", Amount: decimal.RequireFromString("30.00")},
		},
	}

	suite.mockReportRepo.On("FindReportByReturnNo", ctx, "RR-1001").Return(&domain.ReturnReport{ReturnNo: "RR-1001"}, nil).Once()
	suite.mockReportRepo.On("FindReportByReturnNo", ctx, "RR-1002").Return(&domain.ReturnReport{ReturnNo: "RR-1002"}, nil).Once()

	resp, err := suite.service.RecordCheckStatement(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockReportRepo.AssertNotCalled(suite.T(), "SaveStatement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestRecordCheckStatement_UnknownReturnNo() {
	ctx := context.Background()
	req := dto.CreateCheckStatementRequest{
		StatementNo: "ST-2",
		PaymentDate: "2026-08-20",
		CheckAmount: decimal.RequireFromString("50.00"),
		CheckNo:     "CHK-10",
		Details: []dto.CreateCheckDetailRequest{
			{ReturnNo: "RR-MISSING", Amount: decimal.RequireFromString("50.00")},
		},
	}

	suite.mockReportRepo.On("FindReportByReturnNo", ctx, "RR-MISSING").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.RecordCheckStatement(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
}

func (suite *ReportServiceTestSuite) TestRecordCheckStatement_Success() {
	ctx := context.Background()
	req := dto.CreateCheckStatementRequest{
		StatementNo: "ST-3",
		PaymentDate: "2026-08-20",
		CheckAmount: decimal.RequireFromString("75.00"),
		CheckNo:     "CHK-11",
		Details: []dto.CreateCheckDetailRequest{
			{ReturnNo: "RR-1001", Amount: decimal.RequireFromString("75.00")},
		},
	}

	suite.mockReportRepo.On("FindReportByReturnNo", ctx, "RR-1001").Return(&domain.ReturnReport{ReturnNo: "RR-1001"}, nil).Once()
	suite.mockReportRepo.On("SaveStatement", ctx, mock.MatchedBy(func(s domain.CheckStatement) bool {
		return s.Status == domain.CheckPending && s.CheckAmount.Equal(req.CheckAmount)
	}), mock.MatchedBy(func(d []domain.CheckDetail) bool {
		return len(d) == 1 && d[0].ReturnNo == "RR-1001"
	})).Return(nil).Once()

	resp, err := suite.service.RecordCheckStatement(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.CheckPending), resp.Status)
	suite.Len(resp.Details, 1)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestReconcileStatement_AppliesPaymentsAndClears() {
	ctx := context.Background()
	statementID := uuid.NewString()
	paymentDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	statement := &domain.CheckStatement{
		StatementID: statementID,
		PaymentDate: paymentDate,
		CheckAmount: decimal.RequireFromString("90.00"),
		Status:      domain.CheckPending,
		Details: []domain.CheckDetail{
			{DetailID: uuid.NewString(), StatementID: statementID, ReturnNo: "RR-1001", Amount: decimal.RequireFromString("60.00")},
			{DetailID: uuid.NewString(), StatementID: statementID, ReturnNo: "RR-1002", Amount: decimal.RequireFromString("30.00")},
		},
	}

	suite.mockReportRepo.On("FindStatementByID", ctx, statementID).Return(statement, nil).Once()
	suite.mockReportRepo.On("ApplyPayment", ctx, "RR-1001", decimal.RequireFromString("60.00"), paymentDate).Return(nil).Once()
	suite.mockReportRepo.On("ApplyPayment", ctx, "RR-1002", decimal.RequireFromString("30.00"), paymentDate).Return(nil).Once()
	suite.mockReportRepo.On("UpdateStatementStatus", ctx, statementID, domain.CheckCleared).Return(nil).Once()

	resp, err := suite.service.ReconcileStatement(ctx, statementID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(string(domain.CheckCleared), resp.Status)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestReconcileStatement_RefusedWhenCleared() {
	ctx := context.Background()
	statementID := uuid.NewString()
	statement := &domain.CheckStatement{StatementID: statementID, Status: domain.CheckCleared}

	suite.mockReportRepo.On("FindStatementByID", ctx, statementID).Return(statement, nil).Once()

	resp, err := suite.service.ReconcileStatement(ctx, statementID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementNotPending)
	suite.Nil(resp)
	suite.mockReportRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestSummarize() {
	ctx := context.Background()
	summary := &domain.ReportSummary{
		ReportCount: 2,
		TotalERV:    decimal.RequireFromString("2000.00"),
		ByManufacturer: []domain.ManufacturerSummary{
			{Manufacturer: "PharmaCo", ERV: decimal.RequireFromString("1200.00")},
		},
	}

	suite.mockReportRepo.On("Summarize", ctx).Return(summary, nil).Once()

	resp, err := suite.service.Summarize(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, resp.ReportCount)
	suite.Require().Len(resp.ByManufacturer, 1)
	suite.Equal("PharmaCo", resp.ByManufacturer[0].Manufacturer)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
