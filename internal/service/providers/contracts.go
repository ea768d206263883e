package providers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
)

// ProviderRepository интерфейс репозитория врачей
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	SetApproved(ctx context.Context, id int64, approved bool, now time.Time) error
	// Invalidate сбрасывает кэш чтения, вызывается после commit
	Invalidate(id int64)
}

// UserRepository интерфейс репозитория профилей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetRole(ctx context.Context, id int64, role domain.Role) error
}

// EnrollmentRepository интерфейс репозитория заявок
type EnrollmentRepository interface {
	SetStatusByProvider(ctx context.Context, providerID int64, status domain.EnrollmentStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
