package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
	"github.com/pharmaflow/pharma_returns_app/internal/middleware"
)

// ErrStatementNotPending is returned when reconciling a statement that has
// already cleared.
var ErrStatementNotPending = errors.New("check statement is not pending")

// reportService manages the reconciliation ledger: return reports from the
// processing center and the manufacturer checks paid against them.
type reportService struct {
	reportRepo portsrepo.ReportRepositoryFacade
}

// NewReportService creates a new report service.
func NewReportService(reportRepo portsrepo.ReportRepositoryFacade) portssvc.ReportSvcFacade {
	return &reportService{reportRepo: reportRepo}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// CreateReport records a return report with its manufacturer breakdowns.
func (s *reportService) CreateReport(ctx context.Context, req dto.CreateReportRequest, creatorUserID string) (*dto.ReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoiceDate, err := time.ParseInLocation(dateLayout, req.InvoiceDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid invoice date", apperrors.ErrValidation)
	}
	if req.ERV.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: ERV must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	report := domain.ReturnReport{
		ReportID:       uuid.NewString(),
		ReturnNo:       req.ReturnNo,
		InvoiceDate:    invoiceDate,
		ServiceType:    req.ServiceType,
		ERV:            req.ERV,
		CreditReceived: decimal.Zero,
		Fees:           decimal.Zero,
		AmountPaid:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	breakdowns := make([]domain.ManufacturerBreakdown, len(req.Breakdowns))
	for i, b := range req.Breakdowns {
		var expDate time.Time
		if b.ExpirationDate != "" {
			expDate, err = time.ParseInLocation(dateLayout, b.ExpirationDate, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid breakdown expiration date", apperrors.ErrValidation)
			}
		}
		breakdowns[i] = domain.ManufacturerBreakdown{
			BreakdownID:    uuid.NewString(),
			ReportID:       report.ReportID,
			Manufacturer:   b.Manufacturer,
			ERV:            b.ERV,
			ExpirationDate: expDate,
		}
	}

	if err := s.reportRepo.SaveReport(ctx, report, breakdowns); err != nil {
		logger.Error("Failed to save return report", slog.String("error", err.Error()), slog.String("return_no", req.ReturnNo))
		return nil, fmt.Errorf("failed to save return report: %w", err)
	}

	logger.Info("Return report recorded", slog.String("return_no", report.ReturnNo), slog.String("erv", report.ERV.String()))
	report.Breakdowns = breakdowns
	resp := dto.ToReportResponse(&report)
	return &resp, nil
}

// GetReportByReturnNo retrieves a return report with its breakdowns.
func (s *reportService) GetReportByReturnNo(ctx context.Context, returnNo string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindReportByReturnNo(ctx, returnNo)
	if err != nil {
		return nil, fmt.Errorf("failed to find report %s: %w", returnNo, err)
	}

	breakdowns, err := s.reportRepo.FindBreakdownsByReportID(ctx, report.ReportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load breakdowns for report %s: %w", returnNo, err)
	}
	report.Breakdowns = breakdowns

	resp := dto.ToReportResponse(report)
	return &resp, nil
}

// ListReports retrieves all return reports, most recent invoice first.
func (s *reportService) ListReports(ctx context.Context) (*dto.ListReportsResponse, error) {
	reports, err := s.reportRepo.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	responses := make([]dto.ReportResponse, len(reports))
	for i := range reports {
		responses[i] = dto.ToReportResponse(&reports[i])
	}
	return &dto.ListReportsResponse{Reports: responses}, nil
}

// Summarize aggregates ledger totals and the per-manufacturer ERV rollup.
func (s *reportService) Summarize(ctx context.Context) (*dto.ReportSummaryResponse, error) {
	summary, err := s.reportRepo.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ledger: %w", err)
	}
	resp := dto.ToReportSummaryResponse(summary)
	return &resp, nil
}

// ImportReturnItems parses processing-center CSV rows and attaches the
// catalogued items to a report. Expected columns:
// ndc,description,lot_no,exp_date,pkg_size,full_qty,partial_qty,unit_price,manufacturer
func (s *reportService) ImportReturnItems(ctx context.Context, returnNo string, creatorUserID string, csvData io.Reader) (*dto.ImportItemsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report, err := s.reportRepo.FindReportByReturnNo(ctx, returnNo)
	if err != nil {
		return nil, fmt.Errorf("failed to find report %s: %w", returnNo, err)
	}

	reader := csv.NewReader(csvData)
	reader.FieldsPerRecord = 9
	reader.TrimLeadingSpace = true

	var items []domain.ReturnItem
	var failures []dto.RowFailure
	rowIdx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failures = append(failures, dto.RowFailure{Row: rowIdx, Reason: "malformed CSV row"})
			rowIdx++
			continue
		}
		if rowIdx == 0 && strings.EqualFold(record[0], "ndc") {
			rowIdx++
			continue
		}

		item, parseErr := parseReturnItemRow(record)
		if parseErr != "" {
			failures = append(failures, dto.RowFailure{Row: rowIdx, NDC: record[0], Reason: parseErr})
			rowIdx++
			continue
		}
		item.ItemID = uuid.NewString()
		item.ReportID = report.ReportID
		items = append(items, item)
		rowIdx++
	}

	if len(items) > 0 {
		if err := s.reportRepo.SaveReturnItems(ctx, report.ReportID, items); err != nil {
			logger.Error("Failed to save return items", slog.String("error", err.Error()), slog.String("return_no", returnNo))
			return nil, fmt.Errorf("failed to save return items: %w", err)
		}
	}

	logger.Info("Return items imported", slog.String("return_no", returnNo), slog.Int("added", len(items)), slog.Int("skipped", len(failures)))
	return &dto.ImportItemsResponse{Added: len(items), SkippedRows: failures}, nil
}

// parseReturnItemRow parses one CSV record into a ReturnItem. Returns a
// non-empty failure reason when the row is unusable.
func parseReturnItemRow(record []string) (domain.ReturnItem, string) {
	expDate, err := time.ParseInLocation(dateLayout, strings.TrimSpace(record[3]), time.UTC)
	if err != nil {
		return domain.ReturnItem{}, "invalid exp_date"
	}
	pkgSize, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
	if err != nil {
		return domain.ReturnItem{}, "pkg_size is not an integer"
	}
	fullQty, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
	if err != nil {
		return domain.ReturnItem{}, "full_qty is not an integer"
	}
	partialQty, err := strconv.ParseInt(strings.TrimSpace(record[6]), 10, 64)
	if err != nil {
		return domain.ReturnItem{}, "partial_qty is not an integer"
	}
	unitPrice, err := decimal.NewFromString(strings.TrimSpace(record[7]))
	if err != nil {
		return domain.ReturnItem{}, "unit_price is not a number"
	}

	qty := decimal.NewFromInt(fullQty*pkgSize + partialQty)
	return domain.ReturnItem{
		NDC:           strings.TrimSpace(record[0]),
		Description:   strings.TrimSpace(record[1]),
		LotNo:         strings.TrimSpace(record[2]),
		ExpDate:       expDate,
		PkgSize:       pkgSize,
		FullQty:       fullQty,
		PartialQty:    partialQty,
		UnitPrice:     unitPrice,
		ExtendedPrice: unitPrice.Mul(qty).Round(2),
		Manufacturer:  strings.TrimSpace(record[8]),
	}, ""
}

// RecordCheckStatement records a check and its per-report allocations. Every
// referenced return report must exist.
func (s *reportService) RecordCheckStatement(ctx context.Context, req dto.CreateCheckStatementRequest, creatorUserID string) (*dto.CheckStatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	paymentDate, err := time.ParseInLocation(dateLayout, req.PaymentDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date", apperrors.ErrValidation)
	}

	total := decimal.Zero
	for _, d := range req.Details {
		if d.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: allocation amounts must be positive", apperrors.ErrValidation)
		}
		if _, err := s.reportRepo.FindReportByReturnNo(ctx, d.ReturnNo); err != nil {
			return nil, fmt.Errorf("allocation references unknown return report %s: %w", d.ReturnNo, err)
		}
		total = total.Add(d.Amount)
	}
	if !total.Equal(req.CheckAmount) {
		return nil, fmt.Errorf("%w: allocations sum to %s but check amount is %s", apperrors.ErrValidation, total.String(), req.CheckAmount.String())
	}

	now := time.Now().UTC()
	statement := domain.CheckStatement{
		StatementID: uuid.NewString(),
		StatementNo: req.StatementNo,
		PaymentDate: paymentDate,
		CheckAmount: req.CheckAmount,
		CheckNo:     req.CheckNo,
		Status:      domain.CheckPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	details := make([]domain.CheckDetail, len(req.Details))
	for i, d := range req.Details {
		details[i] = domain.CheckDetail{
			DetailID:    uuid.NewString(),
			StatementID: statement.StatementID,
			ReturnNo:    d.ReturnNo,
			Amount:      d.Amount,
		}
	}

	if err := s.reportRepo.SaveStatement(ctx, statement, details); err != nil {
		logger.Error("Failed to save check statement", slog.String("error", err.Error()), slog.String("check_no", req.CheckNo))
		return nil, fmt.Errorf("failed to save check statement: %w", err)
	}

	logger.Info("Check statement recorded", slog.String("check_no", statement.CheckNo), slog.String("amount", statement.CheckAmount.String()))
	statement.Details = details
	resp := dto.ToCheckStatementResponse(&statement)
	return &resp, nil
}

// GetCheckStatement retrieves a check statement with its details.
func (s *reportService) GetCheckStatement(ctx context.Context, statementID string) (*dto.CheckStatementResponse, error) {
	statement, err := s.reportRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find check statement %s: %w", statementID, err)
	}
	resp := dto.ToCheckStatementResponse(statement)
	return &resp, nil
}

// ListCheckStatements retrieves all check statements.
func (s *reportService) ListCheckStatements(ctx context.Context) (*dto.ListCheckStatementsResponse, error) {
	statements, err := s.reportRepo.ListStatements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list check statements: %w", err)
	}

	responses := make([]dto.CheckStatementResponse, len(statements))
	for i := range statements {
		responses[i] = dto.ToCheckStatementResponse(&statements[i])
	}
	return &dto.ListCheckStatementsResponse{Statements: responses}, nil
}

// ReconcileStatement applies a pending statement's allocations to the
// referenced return reports and marks the statement Cleared. Reconciling a
// cleared statement is refused rather than applied twice.
func (s *reportService) ReconcileStatement(ctx context.Context, statementID string, requestingUserID string) (*dto.CheckStatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statement, err := s.reportRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find check statement %s: %w", statementID, err)
	}
	if statement.Status != domain.CheckPending {
		return nil, fmt.Errorf("%w: status is %s", ErrStatementNotPending, statement.Status)
	}

	for _, detail := range statement.Details {
		if err := s.reportRepo.ApplyPayment(ctx, detail.ReturnNo, detail.Amount, statement.PaymentDate); err != nil {
			logger.Error("Failed to apply payment", slog.String("error", err.Error()), slog.String("return_no", detail.ReturnNo))
			return nil, fmt.Errorf("failed to apply payment to report %s: %w", detail.ReturnNo, err)
		}
	}

	if err := s.reportRepo.UpdateStatementStatus(ctx, statementID, domain.CheckCleared); err != nil {
		return nil, fmt.Errorf("failed to mark statement cleared: %w", err)
	}

	logger.Info("Check statement reconciled",
		slog.String("statement_id", statementID),
		slog.Int("allocations", len(statement.Details)),
		slog.String("reconciled_by", requestingUserID),
	)

	statement.Status = domain.CheckCleared
	resp := dto.ToCheckStatementResponse(statement)
	return &resp, nil
}
