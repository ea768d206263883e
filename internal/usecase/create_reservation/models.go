package create_reservation

import (
	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	PatientID  int64            // ID пациента (из токена)
	ProviderID int64            // ID врача
	Date       types.Date       // Дата приема
	StartTime  types.TimeString // Время начала слота, кратно 30 минутам
	Notes      *string          // Комментарий пациента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Reservation *domain.Reservation
}
