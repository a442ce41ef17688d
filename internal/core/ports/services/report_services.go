package services

import (
	"context"
	"io"

	"github.com/pharmaflow/pharma_returns_app/internal/dto"
)

// ReportReaderSvc defines read operations for the reconciliation ledger
type ReportReaderSvc interface {
	// GetReportByReturnNo retrieves a return report with its breakdowns.
	GetReportByReturnNo(ctx context.Context, returnNo string) (*dto.ReportResponse, error)

	// ListReports retrieves all return reports, most recent invoice first.
	ListReports(ctx context.Context) (*dto.ListReportsResponse, error)

	// Summarize aggregates ledger totals and the per-manufacturer rollup.
	Summarize(ctx context.Context) (*dto.ReportSummaryResponse, error)
}

// ReportWriterSvc defines write operations for the reconciliation ledger
type ReportWriterSvc interface {
	// CreateReport records a return report with its manufacturer breakdowns.
	CreateReport(ctx context.Context, req dto.CreateReportRequest, creatorUserID string) (*dto.ReportResponse, error)

	// ImportReturnItems parses processing-center CSV rows and attaches the
	// catalogued items to a report.
	ImportReturnItems(ctx context.Context, returnNo string, creatorUserID string, csvData io.Reader) (*dto.ImportItemsResponse, error)
}

// CheckSvc defines operations for manufacturer check statements
type CheckSvc interface {
	// RecordCheckStatement records a check and its per-report allocations.
	RecordCheckStatement(ctx context.Context, req dto.CreateCheckStatementRequest, creatorUserID string) (*dto.CheckStatementResponse, error)

	// GetCheckStatement retrieves a check statement with its details.
	GetCheckStatement(ctx context.Context, statementID string) (*dto.CheckStatementResponse, error)

	// ListCheckStatements retrieves all check statements.
	ListCheckStatements(ctx context.Context) (*dto.ListCheckStatementsResponse, error)

	// ReconcileStatement applies a pending statement's allocations to the
	// referenced return reports and marks the statement Cleared.
	ReconcileStatement(ctx context.Context, statementID string, requestingUserID string) (*dto.CheckStatementResponse, error)
}

// ReportSvcFacade combines ledger and check service interfaces
type ReportSvcFacade interface {
	ReportReaderSvc
	ReportWriterSvc
	CheckSvc
}
