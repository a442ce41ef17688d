package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	ProductRepo    ProductRepositoryFacade
	ReasonRepo     ReasonRepository
	SubmissionRepo SubmissionRepositoryWithTx
	ReportRepo     ReportRepositoryFacade
	UserRepo       UserRepository
	APITokenRepo   APITokenRepository
}
