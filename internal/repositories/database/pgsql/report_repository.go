package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/mapping"
)

type PgxReportRepository struct {
	BaseRepository
}

// newPgxReportRepository creates a new repository for the reconciliation
// ledger: return reports, processed items, check statements, and categories.
func newPgxReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepositoryFacade {
	return &PgxReportRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)

const reportColumns = `report_id, return_no, invoice_date, service_type, erv, credit_received, fees, amount_paid, last_payment_date, created_at, created_by, last_updated_at, last_updated_by`

func scanReport(row pgx.Row) (models.ReturnReport, error) {
	var m models.ReturnReport
	err := row.Scan(
		&m.ReportID,
		&m.ReturnNo,
		&m.InvoiceDate,
		&m.ServiceType,
		&m.ERV,
		&m.CreditReceived,
		&m.Fees,
		&m.AmountPaid,
		&m.LastPaymentDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReport persists a return report with its breakdowns in one transaction.
func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.ReturnReport, breakdowns []domain.ManufacturerBreakdown) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelReturnReport(report)
	reportQuery := `
		INSERT INTO return_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, reportQuery,
		m.ReportID,
		m.ReturnNo,
		m.InvoiceDate,
		m.ServiceType,
		m.ERV,
		m.CreditReceived,
		m.Fees,
		m.AmountPaid,
		m.LastPaymentDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert return report "+m.ReturnNo, err)
	}

	batch := &pgx.Batch{}
	breakdownQuery := `
		INSERT INTO manufacturer_breakdowns (breakdown_id, report_id, manufacturer, erv, expiration_date)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, b := range breakdowns {
		mb := mapping.ToModelBreakdown(b)
		batch.Queue(breakdownQuery,
			mb.BreakdownID,
			mb.ReportID,
			mb.Manufacturer,
			mb.ERV,
			mb.ExpirationDate,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert breakdowns for report "+m.ReturnNo, err)
	}

	return r.Commit(ctx, tx)
}

// FindReportByReturnNo retrieves a return report by its business key.
func (r *PgxReportRepository) FindReportByReturnNo(ctx context.Context, returnNo string) (*domain.ReturnReport, error) {
	query := `SELECT ` + reportColumns + ` FROM return_reports WHERE return_no = $1;`
	m, err := scanReport(r.Pool.QueryRow(ctx, query, returnNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find report by return no "+returnNo, err)
	}
	d := mapping.ToDomainReturnReport(m)
	return &d, nil
}

// ListReports retrieves all return reports ordered by invoice date descending.
func (r *PgxReportRepository) ListReports(ctx context.Context) ([]domain.ReturnReport, error) {
	query := `SELECT ` + reportColumns + ` FROM return_reports ORDER BY invoice_date DESC, return_no;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query return reports", err)
	}
	defer rows.Close()

	reports := []models.ReturnReport{}
	for rows.Next() {
		m, err := scanReport(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan return report row", err)
		}
		reports = append(reports, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating return report rows", err)
	}
	return mapping.ToDomainReturnReportSlice(reports), nil
}

// FindBreakdownsByReportID retrieves the manufacturer breakdowns for a report.
func (r *PgxReportRepository) FindBreakdownsByReportID(ctx context.Context, reportID string) ([]domain.ManufacturerBreakdown, error) {
	query := `
		SELECT breakdown_id, report_id, manufacturer, erv, expiration_date
		FROM manufacturer_breakdowns
		WHERE report_id = $1
		ORDER BY manufacturer;
	`
	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query breakdowns for report "+reportID, err)
	}
	defer rows.Close()

	breakdowns := []models.ManufacturerBreakdown{}
	for rows.Next() {
		var m models.ManufacturerBreakdown
		if err := rows.Scan(&m.BreakdownID, &m.ReportID, &m.Manufacturer, &m.ERV, &m.ExpirationDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan breakdown row for report "+reportID, err)
		}
		breakdowns = append(breakdowns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating breakdown rows for report "+reportID, err)
	}
	return mapping.ToDomainBreakdownSlice(breakdowns), nil
}

// SaveReturnItems appends processed return items to a report.
func (r *PgxReportRepository) SaveReturnItems(ctx context.Context, reportID string, items []domain.ReturnItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO return_items (item_id, report_id, ndc, description, lot_no, exp_date, pkg_size, full_qty, partial_qty, unit_price, extended_price, category_id, reason_id, manufacturer)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, item := range items {
		m := mapping.ToModelReturnItem(item)
		batch.Queue(itemQuery,
			m.ItemID,
			m.ReportID,
			m.NDC,
			m.Description,
			m.LotNo,
			m.ExpDate,
			m.PkgSize,
			m.FullQty,
			m.PartialQty,
			m.UnitPrice,
			m.ExtendedPrice,
			m.CategoryID,
			m.ReasonID,
			m.Manufacturer,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert return items for report "+reportID, err)
	}
	return nil
}

// FindItemsByReportID retrieves the processed return items for a report.
func (r *PgxReportRepository) FindItemsByReportID(ctx context.Context, reportID string) ([]domain.ReturnItem, error) {
	query := `
		SELECT item_id, report_id, ndc, description, lot_no, exp_date, pkg_size, full_qty, partial_qty, unit_price, extended_price, category_id, reason_id, manufacturer
		FROM return_items
		WHERE report_id = $1
		ORDER BY ndc, lot_no;
	`
	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query return items for report "+reportID, err)
	}
	defer rows.Close()

	items := []models.ReturnItem{}
	for rows.Next() {
		var m models.ReturnItem
		err := rows.Scan(
			&m.ItemID,
			&m.ReportID,
			&m.NDC,
			&m.Description,
			&m.LotNo,
			&m.ExpDate,
			&m.PkgSize,
			&m.FullQty,
			&m.PartialQty,
			&m.UnitPrice,
			&m.ExtendedPrice,
			&m.CategoryID,
			&m.ReasonID,
			&m.Manufacturer,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan return item row for report "+reportID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating return item rows for report "+reportID, err)
	}
	return mapping.ToDomainReturnItemSlice(items), nil
}

// ApplyPayment adds a payment amount to a report's credit-received and
// amount-paid totals and advances its last payment date.
func (r *PgxReportRepository) ApplyPayment(ctx context.Context, returnNo string, amount decimal.Decimal, paymentDate time.Time) error {
	query := `
		UPDATE return_reports
		SET credit_received = credit_received + $1,
		    amount_paid = amount_paid + $1,
		    last_payment_date = GREATEST(COALESCE(last_payment_date, $2), $2),
		    last_updated_at = NOW()
		WHERE return_no = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, amount, paymentDate, returnNo)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply payment to report "+returnNo, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Summarize aggregates ledger totals and the per-manufacturer ERV rollup.
func (r *PgxReportRepository) Summarize(ctx context.Context) (*domain.ReportSummary, error) {
	summary := &domain.ReportSummary{
		TotalERV:            decimal.Zero,
		TotalCreditReceived: decimal.Zero,
		TotalFees:           decimal.Zero,
		TotalAmountPaid:     decimal.Zero,
	}

	totalsQuery := `
		SELECT COUNT(*),
		       COALESCE(SUM(erv), 0),
		       COALESCE(SUM(credit_received), 0),
		       COALESCE(SUM(fees), 0),
		       COALESCE(SUM(amount_paid), 0)
		FROM return_reports;
	`
	err := r.Pool.QueryRow(ctx, totalsQuery).Scan(
		&summary.ReportCount,
		&summary.TotalERV,
		&summary.TotalCreditReceived,
		&summary.TotalFees,
		&summary.TotalAmountPaid,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate ledger totals", err)
	}

	rollupQuery := `
		SELECT manufacturer, COALESCE(SUM(erv), 0)
		FROM manufacturer_breakdowns
		GROUP BY manufacturer
		ORDER BY manufacturer;
	`
	rows, err := r.Pool.Query(ctx, rollupQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query manufacturer rollup", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.ManufacturerSummary
		if err := rows.Scan(&row.Manufacturer, &row.ERV); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan manufacturer rollup row", err)
		}
		summary.ByManufacturer = append(summary.ByManufacturer, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating manufacturer rollup rows", err)
	}

	return summary, nil
}

const statementColumns = `statement_id, statement_no, payment_date, check_amount, check_no, status, created_at, created_by, last_updated_at, last_updated_by`

func scanStatement(row pgx.Row) (models.CheckStatement, error) {
	var m models.CheckStatement
	err := row.Scan(
		&m.StatementID,
		&m.StatementNo,
		&m.PaymentDate,
		&m.CheckAmount,
		&m.CheckNo,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveStatement persists a check statement with its details in one transaction.
func (r *PgxReportRepository) SaveStatement(ctx context.Context, statement domain.CheckStatement, details []domain.CheckDetail) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelCheckStatement(statement)
	statementQuery := `
		INSERT INTO check_statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, statementQuery,
		m.StatementID,
		m.StatementNo,
		m.PaymentDate,
		m.CheckAmount,
		m.CheckNo,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert check statement "+m.CheckNo, err)
	}

	batch := &pgx.Batch{}
	detailQuery := `
		INSERT INTO check_details (detail_id, statement_id, return_no, amount)
		VALUES ($1, $2, $3, $4);
	`
	for _, d := range details {
		md := mapping.ToModelCheckDetail(d)
		batch.Queue(detailQuery, md.DetailID, md.StatementID, md.ReturnNo, md.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert details for check statement "+m.CheckNo, err)
	}

	return r.Commit(ctx, tx)
}

// FindStatementByID retrieves a check statement with its details.
func (r *PgxReportRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.CheckStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM check_statements WHERE statement_id = $1;`
	m, err := scanStatement(r.Pool.QueryRow(ctx, query, statementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find check statement "+statementID, err)
	}

	detailQuery := `
		SELECT detail_id, statement_id, return_no, amount
		FROM check_details
		WHERE statement_id = $1
		ORDER BY return_no;
	`
	rows, err := r.Pool.Query(ctx, detailQuery, statementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query details for check statement "+statementID, err)
	}
	defer rows.Close()

	details := []models.CheckDetail{}
	for rows.Next() {
		var d models.CheckDetail
		if err := rows.Scan(&d.DetailID, &d.StatementID, &d.ReturnNo, &d.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan check detail row for statement "+statementID, err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating check detail rows for statement "+statementID, err)
	}

	statement := mapping.ToDomainCheckStatement(m)
	statement.Details = mapping.ToDomainCheckDetailSlice(details)
	return &statement, nil
}

// ListStatements retrieves all check statements ordered by payment date
// descending.
func (r *PgxReportRepository) ListStatements(ctx context.Context) ([]domain.CheckStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM check_statements ORDER BY payment_date DESC, statement_no;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query check statements", err)
	}
	defer rows.Close()

	statements := []models.CheckStatement{}
	for rows.Next() {
		m, err := scanStatement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan check statement row", err)
		}
		statements = append(statements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating check statement rows", err)
	}
	return mapping.ToDomainCheckStatementSlice(statements), nil
}

// UpdateStatementStatus updates the reconciliation status of a statement.
func (r *PgxReportRepository) UpdateStatementStatus(ctx context.Context, statementID string, status domain.CheckStatementStatus) error {
	query := `UPDATE check_statements SET status = $1, last_updated_at = NOW() WHERE statement_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, string(status), statementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of check statement "+statementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveCategory inserts or updates a return category.
func (r *PgxReportRepository) SaveCategory(ctx context.Context, category domain.ReturnCategory) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO return_categories (category_id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name); err != nil {
		return apperrors.NewAppError(500, "failed to save return category "+m.Name, err)
	}
	return nil
}

// ListCategories retrieves all return categories.
func (r *PgxReportRepository) ListCategories(ctx context.Context) ([]domain.ReturnCategory, error) {
	rows, err := r.Pool.Query(ctx, `SELECT category_id, name FROM return_categories ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query return categories", err)
	}
	defer rows.Close()

	categories := []domain.ReturnCategory{}
	for rows.Next() {
		var m models.ReturnCategory
		if err := rows.Scan(&m.CategoryID, &m.Name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan return category row", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating return category rows", err)
	}
	return categories, nil
}

// CountCategories returns the number of return categories.
func (r *PgxReportRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM return_categories;`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count return categories", err)
	}
	return count, nil
}
