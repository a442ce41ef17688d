package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	reasonRepo := newPgxReasonRepository(dbPool)
	submissionRepo := newPgxSubmissionRepository(dbPool)
	reportRepo := newPgxReportRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	apiTokenRepo := newPgxAPITokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:    productRepo,
		ReasonRepo:     reasonRepo,
		SubmissionRepo: submissionRepo,
		ReportRepo:     reportRepo,
		UserRepo:       userRepo,
		APITokenRepo:   apiTokenRepo,
	}
}
