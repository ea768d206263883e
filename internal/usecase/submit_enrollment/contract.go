package submit_enrollment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
)

// EnrollmentRepository интерфейс репозитория заявок
type EnrollmentRepository interface {
	Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Enrollment, error)
}

// ProviderRepository интерфейс репозитория врачей
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
