package get_available_slots

import (
	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	ProviderID int64      // ID врача (существование не проверяется)
	Date       types.Date // Дата приема
}

// Response модель ответа со списком слотов
type Response struct {
	ProviderID int64
	Date       types.Date
	Slots      []domain.Slot // Отсортированы по времени
	Warning    error         // Заполнен, если чтение из БД не удалось и список пуст
}
