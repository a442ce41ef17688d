package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Product    ProductSvcFacade
	Reason     ReasonSvcFacade
	Submission SubmissionSvcFacade
	Report     ReportSvcFacade
	User       UserSvcFacade
	APIToken   APITokenSvc

	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}

// StaticDataService defines the interface for seeding reference data: the
// NDC registry defaults, the classification vocabulary, and the return
// categories. Seeding only runs against empty tables.
type StaticDataService interface {
	InitializeStaticData(ctx context.Context) error
}
