package usecase

import "go.uber.org/fx"

// Module provides the presentation use cases to the fx container.
var Module = fx.Provide(
	NewBookCache,
	NewInflightGuard,
	NewAuthUseCase,
	NewInvoiceUseCase,
	NewAnalyticsUseCase,
)
