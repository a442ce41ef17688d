package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/mapping"
	"github.com/pharmaflow/pharma_returns_app/internal/utils/pagination"
)

type PgxSubmissionRepository struct {
	BaseRepository
}

// newPgxSubmissionRepository creates a new repository for submissions, line
// items, and the status history.
func newPgxSubmissionRepository(pool *pgxpool.Pool) portsrepo.SubmissionRepositoryWithTx {
	return &PgxSubmissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SubmissionRepositoryWithTx = (*PgxSubmissionRepository)(nil)

const submissionColumns = `submission_id, user_id, submission_date, status, tracking_number, status_updated_at, created_at, created_by, last_updated_at, last_updated_by`

func scanSubmission(row pgx.Row) (models.Submission, error) {
	var m models.Submission
	err := row.Scan(
		&m.SubmissionID,
		&m.UserID,
		&m.SubmissionDate,
		&m.Status,
		&m.TrackingNumber,
		&m.StatusUpdatedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const statusUpdateInsertQuery = `
	INSERT INTO status_updates (update_id, submission_id, old_status, new_status, updated_by, notes, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

const lineItemInsertQuery = `
	INSERT INTO line_items (item_id, submission_id, ndc, quantity, expiration_date, estimated_credit, status, reason_id, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func queueLineItemInserts(batch *pgx.Batch, items []domain.LineItem) {
	for _, item := range items {
		m := mapping.ToModelLineItem(item)
		batch.Queue(lineItemInsertQuery,
			m.ItemID,
			m.SubmissionID,
			m.NDC,
			m.Quantity,
			m.ExpirationDate,
			m.EstimatedCredit,
			m.Status,
			m.ReasonID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveSubmission persists a submission, its line items, and the initial
// status update within a single database transaction.
func (r *PgxSubmissionRepository) SaveSubmission(ctx context.Context, submission domain.Submission, items []domain.LineItem, initial domain.StatusUpdate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelSubmission(submission)
	submissionQuery := `
		INSERT INTO submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, submissionQuery,
		m.SubmissionID,
		m.UserID,
		m.SubmissionDate,
		m.Status,
		m.TrackingNumber,
		m.StatusUpdatedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert submission "+m.SubmissionID, err)
	}

	batch := &pgx.Batch{}
	queueLineItemInserts(batch, items)

	mu := mapping.ToModelStatusUpdate(initial)
	batch.Queue(statusUpdateInsertQuery,
		mu.UpdateID,
		mu.SubmissionID,
		mu.OldStatus,
		mu.NewStatus,
		mu.UpdatedBy,
		mu.Notes,
		mu.UpdatedAt,
	)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute insert batch for submission "+m.SubmissionID, err)
	}

	return r.Commit(ctx, tx)
}

// AppendItems persists additional line items for an existing submission.
func (r *PgxSubmissionRepository) AppendItems(ctx context.Context, submissionID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	queueLineItemInserts(batch, items)

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to append line items to submission "+submissionID, err)
	}
	return nil
}

// TransitionStatus atomically moves a submission to update.NewStatus and
// appends the status update. The guarded UPDATE and the history insert share
// one transaction, so the status column and its history never disagree. A
// zero-row UPDATE under a non-nil expectedStatus means another writer got
// there first.
func (r *PgxSubmissionRepository) TransitionStatus(ctx context.Context, submissionID string, expectedStatus *domain.SubmissionStatus, update domain.StatusUpdate, trackingNumber *string, statusUpdatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	args := []interface{}{string(update.NewStatus), statusUpdatedAt, update.UpdatedBy}
	setClause := `SET status = $1, status_updated_at = $2, last_updated_at = $2, last_updated_by = $3`
	if trackingNumber != nil {
		args = append(args, *trackingNumber)
		setClause += `, tracking_number = $` + strconv.Itoa(len(args))
	}

	args = append(args, submissionID)
	whereClause := ` WHERE submission_id = $` + strconv.Itoa(len(args))
	if expectedStatus != nil {
		args = append(args, string(*expectedStatus))
		whereClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	tag, err := tx.Exec(ctx, `UPDATE submissions `+setClause+whereClause+`;`, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of submission "+submissionID, err)
	}
	if tag.RowsAffected() == 0 {
		if expectedStatus != nil {
			return apperrors.ErrConflict
		}
		return apperrors.ErrNotFound
	}

	mu := mapping.ToModelStatusUpdate(update)
	_, err = tx.Exec(ctx, statusUpdateInsertQuery,
		mu.UpdateID,
		mu.SubmissionID,
		mu.OldStatus,
		mu.NewStatus,
		mu.UpdatedBy,
		mu.Notes,
		mu.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert status update for submission "+submissionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindSubmissionByID retrieves a submission header by ID.
func (r *PgxSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE submission_id = $1;`
	m, err := scanSubmission(r.Pool.QueryRow(ctx, query, submissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find submission by ID "+submissionID, err)
	}
	d := mapping.ToDomainSubmission(m)
	return &d, nil
}

// ListSubmissions retrieves a paginated list of submissions using token-based
// pagination, most recent first. An empty userID spans all users.
func (r *PgxSubmissionRepository) ListSubmissions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Submission, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to detect whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + submissionColumns + ` FROM submissions`
	orderByClause := `ORDER BY submission_date DESC, created_at DESC`

	var conditions []string
	args := []interface{}{}
	if userID != "" {
		args = append(args, userID)
		conditions = append(conditions, `user_id = $`+strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		lastSubmissionDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastSubmissionDate, lastCreatedAt)
		conditions = append(conditions, `(submission_date, created_at) < ($`+strconv.Itoa(len(args)-1)+`, $`+strconv.Itoa(len(args))+`)`)
	}

	query := baseQuery
	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	args = append(args, fetchLimit)
	query += ` ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query submissions", err)
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSubmission(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan submission row", err)
		}
		submissions = append(submissions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating submission rows", err)
	}

	var nextTokenVal *string
	if len(submissions) > limit {
		last := submissions[limit-1]
		token := pagination.EncodeToken(last.SubmissionDate, last.CreatedAt)
		nextTokenVal = &token
		submissions = submissions[:limit]
	}

	return mapping.ToDomainSubmissionSlice(submissions), nextTokenVal, nil
}

// FindItemsBySubmissionID retrieves all line items for a submission in
// creation order.
func (r *PgxSubmissionRepository) FindItemsBySubmissionID(ctx context.Context, submissionID string) ([]domain.LineItem, error) {
	query := `
		SELECT item_id, submission_id, ndc, quantity, expiration_date, estimated_credit, status, reason_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM line_items
		WHERE submission_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, submissionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for submission "+submissionID, err)
	}
	defer rows.Close()

	items := []models.LineItem{}
	for rows.Next() {
		var m models.LineItem
		err := rows.Scan(
			&m.ItemID,
			&m.SubmissionID,
			&m.NDC,
			&m.Quantity,
			&m.ExpirationDate,
			&m.EstimatedCredit,
			&m.Status,
			&m.ReasonID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for submission "+submissionID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for submission "+submissionID, err)
	}
	return mapping.ToDomainLineItemSlice(items), nil
}

// FindStatusHistory retrieves the ordered status-update history for a
// submission, oldest first.
func (r *PgxSubmissionRepository) FindStatusHistory(ctx context.Context, submissionID string) ([]domain.StatusUpdate, error) {
	query := `
		SELECT update_id, submission_id, old_status, new_status, updated_by, notes, updated_at
		FROM status_updates
		WHERE submission_id = $1
		ORDER BY updated_at, update_id;
	`
	rows, err := r.Pool.Query(ctx, query, submissionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query status history for submission "+submissionID, err)
	}
	defer rows.Close()

	updates := []models.StatusUpdate{}
	for rows.Next() {
		var m models.StatusUpdate
		err := rows.Scan(
			&m.UpdateID,
			&m.SubmissionID,
			&m.OldStatus,
			&m.NewStatus,
			&m.UpdatedBy,
			&m.Notes,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status update row for submission "+submissionID, err)
		}
		updates = append(updates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status update rows for submission "+submissionID, err)
	}
	return mapping.ToDomainStatusUpdateSlice(updates), nil
}
