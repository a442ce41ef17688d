package repositories

import (
	"context"
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportReader defines read operations for the reconciliation ledger.
type ReportReader interface {
	// FindReportByReturnNo retrieves a return report by its business key.
	FindReportByReturnNo(ctx context.Context, returnNo string) (*domain.ReturnReport, error)

	// ListReports retrieves all return reports ordered by invoice date
	// descending.
	ListReports(ctx context.Context) ([]domain.ReturnReport, error)

	// FindBreakdownsByReportID retrieves the manufacturer breakdowns for a
	// report.
	FindBreakdownsByReportID(ctx context.Context, reportID string) ([]domain.ManufacturerBreakdown, error)

	// FindItemsByReportID retrieves the processed return items for a report.
	FindItemsByReportID(ctx context.Context, reportID string) ([]domain.ReturnItem, error)

	// Summarize aggregates ledger totals and the per-manufacturer ERV rollup.
	Summarize(ctx context.Context) (*domain.ReportSummary, error)
}

// ReportWriter defines write operations for the reconciliation ledger.
type ReportWriter interface {
	// SaveReport persists a return report with its breakdowns in one
	// transaction.
	SaveReport(ctx context.Context, report domain.ReturnReport, breakdowns []domain.ManufacturerBreakdown) error

	// SaveReturnItems appends processed return items to a report.
	SaveReturnItems(ctx context.Context, reportID string, items []domain.ReturnItem) error

	// ApplyPayment adds a payment amount to a report's credit-received and
	// amount-paid totals and advances its last payment date.
	ApplyPayment(ctx context.Context, returnNo string, amount decimal.Decimal, paymentDate time.Time) error
}

// CheckReader defines read operations for check statements.
type CheckReader interface {
	// FindStatementByID retrieves a check statement with its details.
	FindStatementByID(ctx context.Context, statementID string) (*domain.CheckStatement, error)

	// ListStatements retrieves all check statements ordered by payment date
	// descending.
	ListStatements(ctx context.Context) ([]domain.CheckStatement, error)
}

// CheckWriter defines write operations for check statements.
type CheckWriter interface {
	// SaveStatement persists a check statement with its details in one
	// transaction.
	SaveStatement(ctx context.Context, statement domain.CheckStatement, details []domain.CheckDetail) error

	// UpdateStatementStatus updates the reconciliation status of a statement.
	UpdateStatementStatus(ctx context.Context, statementID string, status domain.CheckStatementStatus) error
}

// CategoryRepository defines persistence operations for return categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.ReturnCategory) error
	ListCategories(ctx context.Context) ([]domain.ReturnCategory, error)
	CountCategories(ctx context.Context) (int64, error)
}

// ReportRepositoryFacade combines ledger, check, and category operations.
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
	CheckReader
	CheckWriter
	CategoryRepository
}
