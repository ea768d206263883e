package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// ScheduleRepository интерфейс репозитория недельного расписания врачей
type ScheduleRepository interface {
	// GetActiveByProviderAndDay возвращает активные окна приема врача на день недели (1=пн..7=вс)
	GetActiveByProviderAndDay(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.ScheduleRule, error)
}

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	// GetBlockingByProviderAndDate возвращает неотмененные записи врача на дату
	GetBlockingByProviderAndDate(ctx context.Context, providerID int64, date types.Date) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
