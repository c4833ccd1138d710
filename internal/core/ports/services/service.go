package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Settings   SettingsSvc
	Currency   CurrencySvcFacade
	Conversion ConversionSvcFacade
	Sync       CurrencySyncSvc
	StaticData StaticDataService
}

// StaticDataService seeds the data the application needs before serving requests.
type StaticDataService interface {
	InitializeStaticData(ctx context.Context) error
}
