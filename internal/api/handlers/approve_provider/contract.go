package approve_provider

import (
	"context"

	"github.com/m04kA/SMC-ClinicBookingService/internal/service/providers/models"
)

type ProviderService interface {
	Approve(ctx context.Context, providerID int64, actingUserID int64) (*models.ProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
