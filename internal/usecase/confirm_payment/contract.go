package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/mailer"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	// FinalizePending меняет статусы только у записи в pending, иначе ErrNotPending
	FinalizePending(ctx context.Context, id int64, status domain.ReservationStatus, paymentStatus domain.PaymentStatus, now time.Time) error
}

// UserRepository интерфейс репозитория профилей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProviderRepository интерфейс репозитория врачей
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// Mailer отправка письма о подтверждении
type Mailer interface {
	SendBookingConfirmation(c mailer.BookingConfirmation) error
}

// EventPublisher публикация событий в брокер
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics бизнес-метрики
type Metrics interface {
	RecordPaymentNotification(outcome string)
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
