package services

import (
	portsrepo "github.com/pharmaflow/pharma_returns_app/internal/core/ports/repositories"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(repos.ProductRepo)
	container.Reason = NewReasonService(repos.ReasonRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Submission = NewSubmissionService(repos.SubmissionRepo, repos.ProductRepo, repos.ReasonRepo)
	container.Report = NewReportService(repos.ReportRepo)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.User)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// NewStaticDataSvc wires the startup seeding service from the repository provider.
func NewStaticDataSvc(repos portsrepo.RepositoryProvider) portssvc.StaticDataService {
	return NewStaticDataService(repos.ProductRepo, repos.ReasonRepo, repos.ReportRepo)
}

// Compile-time checks that each service satisfies its facade.
var (
	_ portssvc.ProductSvcFacade    = (*productService)(nil)
	_ portssvc.ReasonSvcFacade     = (*reasonService)(nil)
	_ portssvc.SubmissionSvcFacade = (*submissionService)(nil)
	_ portssvc.ReportSvcFacade     = (*reportService)(nil)
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.APITokenSvc         = (*apiTokenService)(nil)
)
