package reservations

import (
	"context"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByPatientID(ctx context.Context, patientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
}

// ProviderRepository интерфейс репозитория врачей
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// UserRepository интерфейс репозитория профилей (роль берется из БД)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
